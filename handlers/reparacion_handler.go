package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Alex-109/Genchi-Bitacora-Back/events"
	"github.com/Alex-109/Genchi-Bitacora-Back/middleware"
	"github.com/Alex-109/Genchi-Bitacora-Back/models"
	"github.com/Alex-109/Genchi-Bitacora-Back/repairs"
	"github.com/Alex-109/Genchi-Bitacora-Back/utils"
)

type IniciarReparacionRequest struct {
	IDEquipo int64             `json:"id_equipo"`
	Cambios  map[string]string `json:"cambios"`
	Obs      string            `json:"obs,omitempty"`
	Rut      string            `json:"rut,omitempty"`
}

// IniciarReparacion applies a change-diff to an equipo and records the
// resulting history entry.
func IniciarReparacion(w http.ResponseWriter, r *http.Request) {
	var req IniciarReparacionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Cambios == nil {
		req.Cambios = map[string]string{}
	}

	// The authenticated technician wins over whatever the body claims.
	rut := req.Rut
	if ctxRut, ok := r.Context().Value(middleware.CtxRut).(string); ok && ctxRut != "" {
		rut = ctxRut
	}

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	repa, err := recorder.Apply(ctx, req.IDEquipo, req.Cambios, req.Obs, rut)
	if err != nil {
		switch {
		case errors.Is(err, repairs.ErrNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "equipo no encontrado")
		case errors.Is(err, repairs.ErrConflict):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, repairs.ErrNoChanges):
			utils.RespondWithError(w, http.StatusBadRequest, "no hay cambios ni observaciones para registrar")
		default:
			log.Printf("iniciar reparacion error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "error al iniciar reparacion")
		}
		return
	}

	events.Broadcast("reparacion", repa.IDEquipo, repa)

	utils.RespondWithJSON(w, http.StatusCreated, repa)
}

// GetHistorialEquipo returns the merged history view: repair entries newest
// first plus the embedded intake history.
func GetHistorialEquipo(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id_equipo")
	if idStr == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "id_equipo no especificado")
		return
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "id_equipo invalido")
		return
	}

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	var equipo models.Equipo
	err = equipoCollection.FindOne(ctx, bson.M{"id": id},
		options.FindOne().SetProjection(bson.M{"id": 1, "historial_ingresos": 1}),
	).Decode(&equipo)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "equipo no encontrado")
			return
		}
		log.Printf("historial equipo lookup error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := reparacionCollection.Find(ctx, bson.M{"id_equipo": id}, opts)
	if err != nil {
		log.Printf("historial reparaciones Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	defer cursor.Close(ctx)

	reparaciones := []models.Reparacion{}
	if err = cursor.All(ctx, &reparaciones); err != nil {
		log.Printf("cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to decode reparaciones")
		return
	}

	ingresos := equipo.HistorialIngresos
	if ingresos == nil {
		ingresos = []models.IntakeEvent{}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"historial_reparaciones": reparaciones,
		"historial_ingresos":     ingresos,
	})
}
