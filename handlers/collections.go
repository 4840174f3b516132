// handlers/collections.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Alex-109/Genchi-Bitacora-Back/acta"
	"github.com/Alex-109/Genchi-Bitacora-Back/config"
	"github.com/Alex-109/Genchi-Bitacora-Back/database"
	"github.com/Alex-109/Genchi-Bitacora-Back/docx"
	"github.com/Alex-109/Genchi-Bitacora-Back/repairs"
	"github.com/Alex-109/Genchi-Bitacora-Back/sequence"
)

var (
	equipoCollection     *mongo.Collection
	reparacionCollection *mongo.Collection
	actaCollection       *mongo.Collection
	objetoCollection     *mongo.Collection
	unidadCollection     *mongo.Collection
	tecnicoCollection    *mongo.Collection
	contadorCollection   *mongo.Collection

	seqGen   sequence.Generator
	recorder *repairs.Recorder
	armador  *acta.Assembler
)

func InitCollections() {
	db := database.Client.Database(config.DBName)
	equipoCollection = db.Collection("equipos")
	reparacionCollection = db.Collection("reparaciones")
	actaCollection = db.Collection("actas")
	objetoCollection = db.Collection("objetos_varios")
	unidadCollection = db.Collection("unidad")
	tecnicoCollection = db.Collection("tecnicos")
	contadorCollection = db.Collection("contadores")

	seqGen = sequence.NewMongo(contadorCollection)
	recorder = repairs.NewRecorder(
		repairs.NewMongoEquipoStore(equipoCollection),
		repairs.NewMongoReparacionStore(reparacionCollection),
		seqGen,
	)
}

// InitActaTemplate loads the fixed receipt template from disk. Must run after
// InitCollections.
func InitActaTemplate() error {
	tpl, err := docx.Open(config.ActaTemplate)
	if err != nil {
		return fmt.Errorf("failed to load acta template: %w", err)
	}
	armador = acta.NewAssembler(seqGen, acta.NewMongoHistoryStore(reparacionCollection), tpl)
	return nil
}

const requestTimeout = 10 * time.Second

func contextWithTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), requestTimeout)
}
