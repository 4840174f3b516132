package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Alex-109/Genchi-Bitacora-Back/models"
	"github.com/Alex-109/Genchi-Bitacora-Back/utils"
)

func GetAllUnidades(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "nombre_u", Value: 1}})
	cursor, err := unidadCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Printf("unidades Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	defer cursor.Close(ctx)

	unidades := []models.Unidad{}
	if err = cursor.All(ctx, &unidades); err != nil {
		log.Printf("cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to decode unidades")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, unidades)
}

func CreateUnidad(w http.ResponseWriter, r *http.Request) {
	var unidad models.Unidad
	if err := json.NewDecoder(r.Body).Decode(&unidad); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if unidad.Direccion == "" || unidad.NombreU == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "la direccion y el nombre son campos obligatorios")
		return
	}

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	count, err := unidadCollection.CountDocuments(ctx, bson.M{"direccion": unidad.Direccion})
	if err != nil {
		log.Printf("unidad unique check error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database error")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "ya existe una unidad con esa direccion")
		return
	}

	if _, err := unidadCollection.InsertOne(ctx, unidad); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "ya existe una unidad con esa direccion")
			return
		}
		log.Printf("insert unidad error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create unidad")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, unidad)
}

func GetUnidadByDireccion(w http.ResponseWriter, r *http.Request) {
	direccion := mux.Vars(r)["direccion"]
	if direccion == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "direccion requerida")
		return
	}

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	var unidad models.Unidad
	err := unidadCollection.FindOne(ctx, bson.M{"direccion": direccion}).Decode(&unidad)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "unidad no encontrada")
			return
		}
		log.Printf("find unidad error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, unidad)
}
