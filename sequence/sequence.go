// sequence/sequence.go
package sequence

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Alex-109/Genchi-Bitacora-Back/models"
)

// Counter names in use across the service.
const (
	NumActaGlobal = "num_acta_global"
	EquipoID      = "equipo_id"
	ObjetoVarioID = "objeto_vario_id"
)

// Generator issues strictly increasing values for a named counter. Two
// concurrent calls for the same name never receive the same value. Issued
// values are never returned to the pool: a caller that fails after drawing a
// number simply leaves a gap.
type Generator interface {
	Next(ctx context.Context, name string) (int64, error)
}

// Mongo is the store-backed Generator. The increment-and-read is a single
// findOneAndUpdate with $inc and upsert, so the first call for a new name
// creates the counter and returns 1.
type Mongo struct {
	counters *mongo.Collection
}

func NewMongo(counters *mongo.Collection) *Mongo {
	return &Mongo{counters: counters}
}

func (m *Mongo) Next(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var c models.Contador
	err := m.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter %q: %w", name, err)
	}

	return c.Seq, nil
}
