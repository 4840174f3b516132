package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Alex-109/Genchi-Bitacora-Back/config"
	"github.com/Alex-109/Genchi-Bitacora-Back/database"
	"github.com/Alex-109/Genchi-Bitacora-Back/models"
	"github.com/Alex-109/Genchi-Bitacora-Back/utils"
)

// Context keys set by AuthMiddleware.
const (
	CtxRut    = "rut"
	CtxNombre = "nombre"
)

// AuthMiddleware requires a valid technician bearer token on mutating routes.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondWithError(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateJWT(tokenString)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		var tecnico models.Tecnico
		err = database.Client.Database(config.DBName).Collection("tecnicos").
			FindOne(r.Context(), bson.M{"rut": claims.Rut}).Decode(&tecnico)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Technician not found")
			return
		}

		ctx := context.WithValue(r.Context(), CtxRut, tecnico.Rut)
		ctx = context.WithValue(ctx, CtxNombre, tecnico.Nombre)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
