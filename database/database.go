// database/database.go
package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Alex-109/Genchi-Bitacora-Back/config"
)

var Client *mongo.Client

func Connect() error {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = config.MongoURI
		if mongoURI == "" {
			return fmt.Errorf("MONGO_URI environment variable is required (or set config.MongoURI)")
		}
	}

	clientOptions := options.Client().
		ApplyURI(mongoURI).
		SetConnectTimeout(20 * time.Second).
		SetServerSelectionTimeout(15 * time.Second).
		SetSocketTimeout(20 * time.Second).
		SetMaxPoolSize(50)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	Client, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to create MongoDB client: %w", err)
	}

	ctxPing, cancelPing := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelPing()

	if err = Client.Ping(ctxPing, readpref.Primary()); err != nil {
		_ = Client.Disconnect(context.Background())
		return fmt.Errorf("failed to ping MongoDB (connection/auth/network issue): %w", err)
	}

	log.Println("Successfully connected to MongoDB")
	return nil
}

// EnsureIndexes creates the sparse unique indexes the uniqueness rules depend
// on. Absent values are exempt: two equipos without a serial do not collide.
func EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := Client.Database(config.DBName)

	sparseUnique := func(field string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		}
	}

	equipoIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		sparseUnique("serie"),
		sparseUnique("num_inv"),
		sparseUnique("ip"),
		sparseUnique("nombre_equipo"),
	}
	if _, err := db.Collection("equipos").Indexes().CreateMany(ctx, equipoIndexes); err != nil {
		return fmt.Errorf("failed to create equipos indexes: %w", err)
	}

	if _, err := db.Collection("unidad").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "direccion", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create unidad index: %w", err)
	}

	if _, err := db.Collection("tecnicos").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "rut", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create tecnicos index: %w", err)
	}

	if _, err := db.Collection("objetos_varios").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create objetos_varios index: %w", err)
	}

	return nil
}

func Disconnect() {
	if Client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := Client.Disconnect(ctx); err != nil {
		log.Printf("MongoDB disconnect warning: %v", err)
	}
}
