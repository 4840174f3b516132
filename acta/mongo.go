// acta/mongo.go
package acta

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Alex-109/Genchi-Bitacora-Back/models"
)

// MongoHistoryStore resolves observations from the reparaciones collection.
type MongoHistoryStore struct {
	reparaciones *mongo.Collection
}

func NewMongoHistoryStore(reparaciones *mongo.Collection) *MongoHistoryStore {
	return &MongoHistoryStore{reparaciones: reparaciones}
}

func (s *MongoHistoryStore) LatestObs(ctx context.Context, idEquipo int64) (string, bool, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var r models.Reparacion
	err := s.reparaciones.FindOne(ctx, bson.M{"id_equipo": idEquipo}, opts).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to fetch latest reparacion for equipo %d: %w", idEquipo, err)
	}
	return r.Obs, true, nil
}
