// repairs/mongo.go
package repairs

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Alex-109/Genchi-Bitacora-Back/models"
)

// MongoEquipoStore reads and writes equipos by their integer id.
type MongoEquipoStore struct {
	equipos *mongo.Collection
}

func NewMongoEquipoStore(equipos *mongo.Collection) *MongoEquipoStore {
	return &MongoEquipoStore{equipos: equipos}
}

func (s *MongoEquipoStore) FindByID(ctx context.Context, id int64) (*models.Equipo, error) {
	var e models.Equipo
	err := s.equipos.FindOne(ctx, bson.M{"id": id}).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch equipo %d: %w", id, err)
	}
	return &e, nil
}

func (s *MongoEquipoStore) ExistsOther(ctx context.Context, field, value string, excludeID int64) (bool, error) {
	count, err := s.equipos.CountDocuments(ctx, bson.M{
		field: value,
		"id":  bson.M{"$ne": excludeID},
	})
	if err != nil {
		return false, fmt.Errorf("failed to check %s uniqueness: %w", field, err)
	}
	return count > 0, nil
}

func (s *MongoEquipoStore) Save(ctx context.Context, e *models.Equipo) error {
	e.UpdatedAt = time.Now().UTC()
	res, err := s.equipos.ReplaceOne(ctx, bson.M{"id": e.ID}, e)
	if err != nil {
		return fmt.Errorf("failed to save equipo %d: %w", e.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MongoReparacionStore appends history entries to the reparaciones collection.
type MongoReparacionStore struct {
	reparaciones *mongo.Collection
}

func NewMongoReparacionStore(reparaciones *mongo.Collection) *MongoReparacionStore {
	return &MongoReparacionStore{reparaciones: reparaciones}
}

func (s *MongoReparacionStore) Insert(ctx context.Context, r *models.Reparacion) error {
	if _, err := s.reparaciones.InsertOne(ctx, r); err != nil {
		return fmt.Errorf("failed to insert reparacion: %w", err)
	}
	return nil
}
