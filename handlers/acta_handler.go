package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Alex-109/Genchi-Bitacora-Back/acta"
	"github.com/Alex-109/Genchi-Bitacora-Back/events"
	"github.com/Alex-109/Genchi-Bitacora-Back/middleware"
	"github.com/Alex-109/Genchi-Bitacora-Back/models"
	"github.com/Alex-109/Genchi-Bitacora-Back/utils"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// GenerarActaEntrega renders the delivery receipt for a single equipo.
func GenerarActaEntrega(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid equipo id")
		return
	}

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	var equipo models.Equipo
	err = equipoCollection.FindOne(ctx, bson.M{"id": id}).Decode(&equipo)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "equipo no encontrado")
			return
		}
		log.Printf("acta equipo lookup error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	entregarActa(w, r, []*models.Equipo{&equipo}, nil, acta.Encargado{})
}

type GenerarActaRequest struct {
	IDsEquipos      []int64 `json:"ids_equipos,omitempty"`
	IDsObjetos      []int64 `json:"ids_objetos,omitempty"`
	NombreEncargado string  `json:"nombre_encargado,omitempty"`
	CargoEncargado  string  `json:"cargo_encargado,omitempty"`
}

// GenerarActa renders a multi-item receipt covering equipos and objetos
// varios under a single document number.
func GenerarActa(w http.ResponseWriter, r *http.Request) {
	var req GenerarActaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if len(req.IDsEquipos) == 0 && len(req.IDsObjetos) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "debe indicar equipos u objetos para el acta")
		return
	}

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	// Resolve in the order supplied; ids that match nothing are dropped.
	equipos := make([]*models.Equipo, 0, len(req.IDsEquipos))
	for _, id := range req.IDsEquipos {
		var e models.Equipo
		err := equipoCollection.FindOne(ctx, bson.M{"id": id}).Decode(&e)
		if err == mongo.ErrNoDocuments {
			continue
		}
		if err != nil {
			log.Printf("acta equipo lookup error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
			return
		}
		equipos = append(equipos, &e)
	}

	objetos := make([]*models.ObjetoVario, 0, len(req.IDsObjetos))
	for _, id := range req.IDsObjetos {
		var o models.ObjetoVario
		err := objetoCollection.FindOne(ctx, bson.M{"id": id}).Decode(&o)
		if err == mongo.ErrNoDocuments {
			continue
		}
		if err != nil {
			log.Printf("acta objeto lookup error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
			return
		}
		objetos = append(objetos, &o)
	}

	if len(equipos)+len(objetos) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "ninguno de los ids corresponde a un registro existente")
		return
	}

	entregarActa(w, r, equipos, objetos, acta.Encargado{
		Nombre: req.NombreEncargado,
		Cargo:  req.CargoEncargado,
	})
}

func entregarActa(w http.ResponseWriter, r *http.Request, equipos []*models.Equipo, objetos []*models.ObjetoVario, enc acta.Encargado) {
	if armador == nil {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "plantilla de acta no disponible")
		return
	}

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	doc, err := armador.Generate(ctx, equipos, objetos, enc)
	if err != nil {
		if errors.Is(err, acta.ErrSinItems) {
			utils.RespondWithError(w, http.StatusBadRequest, "no hay items para el acta")
			return
		}
		log.Printf("generar acta error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "error generando acta de entrega")
		return
	}

	rut, _ := r.Context().Value(middleware.CtxRut).(string)
	registro := models.Acta{
		IDActa:    uuid.NewString(),
		Fecha:     time.Now().UTC(),
		NumActa:   doc.NumActa,
		Rut:       rut,
		CreatedAt: time.Now().UTC(),
	}
	// A failed record insert leaves a numbering gap, never a blocked download.
	if _, err := actaCollection.InsertOne(ctx, registro); err != nil {
		log.Printf("acta record insert error: %v", err)
	}

	events.Broadcast("acta", 0, map[string]interface{}{"num_acta": doc.Numero})

	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Contenido)
}
