package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Alex-109/Genchi-Bitacora-Back/models"
	"github.com/Alex-109/Genchi-Bitacora-Back/sequence"
	"github.com/Alex-109/Genchi-Bitacora-Back/utils"
)

// ListObjetos returns objetos varios filtered by unit, free text and an
// optional creation date range.
func ListObjetos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := bson.M{}
	if unidad := q.Get("unidad"); unidad != "" && unidad != "todas" {
		filter["unidad"] = bson.M{"$regex": regexp.QuoteMeta(unidad), "$options": "i"}
	}
	if buscar := strings.TrimSpace(q.Get("buscar")); buscar != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(buscar), "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"nombre": pattern},
			bson.M{"comentarios": pattern},
			bson.M{"unidad": pattern},
		}
	}
	if rango, ok := dateRange(q.Get("fechaInicio"), q.Get("fechaFin")); ok {
		filter["createdAt"] = rango
	}

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := objetoCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Printf("objetos Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	defer cursor.Close(ctx)

	objetos := []models.ObjetoVario{}
	if err = cursor.All(ctx, &objetos); err != nil {
		log.Printf("cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to decode objetos")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"data":  objetos,
		"total": len(objetos),
	})
}

func GetObjeto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid objeto id")
		return
	}

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	var objeto models.ObjetoVario
	err = objetoCollection.FindOne(ctx, bson.M{"id": id}).Decode(&objeto)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "objeto no encontrado")
			return
		}
		log.Printf("find objeto error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, objeto)
}

type CreateObjetoRequest struct {
	Nombre      string `json:"nombre"`
	Unidad      string `json:"unidad"`
	Comentarios string `json:"comentarios,omitempty"`
}

func CreateObjeto(w http.ResponseWriter, r *http.Request) {
	var req CreateObjetoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	req.Nombre = strings.TrimSpace(req.Nombre)
	req.Unidad = strings.TrimSpace(req.Unidad)
	if req.Nombre == "" || req.Unidad == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "nombre y unidad son campos obligatorios")
		return
	}

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	id, err := seqGen.Next(ctx, sequence.ObjetoVarioID)
	if err != nil {
		log.Printf("objeto id sequence error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to assign objeto id")
		return
	}

	now := time.Now().UTC()
	objeto := models.ObjetoVario{
		ID:          id,
		Nombre:      req.Nombre,
		Unidad:      req.Unidad,
		Comentarios: strings.TrimSpace(req.Comentarios),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := objetoCollection.InsertOne(ctx, objeto); err != nil {
		log.Printf("insert objeto error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create objeto")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, objeto)
}

type UpdateObjetoRequest struct {
	Nombre string `json:"nombre,omitempty"`
	Unidad string `json:"unidad,omitempty"`
	// Pointer so an explicit empty string clears the comments.
	Comentarios *string `json:"comentarios,omitempty"`
}

func UpdateObjeto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid objeto id")
		return
	}

	var req UpdateObjetoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	update := bson.M{}
	if v := strings.TrimSpace(req.Nombre); v != "" {
		update["nombre"] = v
	}
	if v := strings.TrimSpace(req.Unidad); v != "" {
		update["unidad"] = v
	}
	if req.Comentarios != nil {
		update["comentarios"] = strings.TrimSpace(*req.Comentarios)
	}
	if len(update) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "no fields to update")
		return
	}
	update["updatedAt"] = time.Now().UTC()

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	result, err := objetoCollection.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": update})
	if err != nil {
		log.Printf("update objeto error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to update objeto")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "objeto no encontrado")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "objeto actualizado"})
}

func DeleteObjeto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid objeto id")
		return
	}

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	result, err := objetoCollection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		log.Printf("delete objeto error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to delete objeto")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "objeto no encontrado")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "objeto eliminado"})
}
