package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Alex-109/Genchi-Bitacora-Back/models"
	"github.com/Alex-109/Genchi-Bitacora-Back/utils"
)

type RegisterRequest struct {
	Rut      string `json:"rut"`
	Nombre   string `json:"nombre"`
	Cargo    string `json:"cargo,omitempty"`
	Password string `json:"password"`
}

// Register creates a technician account.
func Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if req.Rut == "" || req.Nombre == "" || req.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "rut, nombre y password son obligatorios")
		return
	}

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	count, err := tecnicoCollection.CountDocuments(ctx, bson.M{"rut": req.Rut})
	if err != nil {
		log.Printf("tecnico unique check error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database error")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "ya existe un tecnico con ese rut")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("password hash error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create tecnico")
		return
	}

	tecnico := models.Tecnico{
		Rut:          req.Rut,
		Nombre:       req.Nombre,
		Cargo:        req.Cargo,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := tecnicoCollection.InsertOne(ctx, tecnico); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "ya existe un tecnico con ese rut")
			return
		}
		log.Printf("insert tecnico error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create tecnico")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, tecnico)
}

type LoginRequest struct {
	Rut      string `json:"rut"`
	Password string `json:"password"`
}

// Login validates credentials and issues a JWT.
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	var tecnico models.Tecnico
	err := tecnicoCollection.FindOne(ctx, bson.M{"rut": req.Rut}).Decode(&tecnico)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusUnauthorized, "credenciales invalidas")
			return
		}
		log.Printf("login lookup error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	if !utils.CheckPasswordHash(req.Password, tecnico.PasswordHash) {
		utils.RespondWithError(w, http.StatusUnauthorized, "credenciales invalidas")
		return
	}

	token, err := utils.GenerateJWT(tecnico.Rut, tecnico.Nombre, tecnico.Cargo)
	if err != nil {
		log.Printf("jwt generation error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"token":   token,
		"tecnico": tecnico,
	})
}
