package routes

import (
	"github.com/gorilla/mux"

	"github.com/Alex-109/Genchi-Bitacora-Back/events"
	"github.com/Alex-109/Genchi-Bitacora-Back/handlers"
	"github.com/Alex-109/Genchi-Bitacora-Back/middleware"
)

// HTTP method constants for better maintainability
var (
	MethodsGetOnly    = []string{"GET", "OPTIONS"}
	MethodsPostOnly   = []string{"POST", "OPTIONS"}
	MethodsPutOnly    = []string{"PUT", "OPTIONS"}
	MethodsDeleteOnly = []string{"DELETE", "OPTIONS"}
)

// Route grouping constants
const (
	PathAPI    = "/api"
	PathHealth = "/health"
)

func RegisterRoutes(r *mux.Router) {
	// ====================
	// HEALTH CHECK (Public)
	// ====================
	r.HandleFunc(PathHealth, handlers.HealthCheck).Methods(MethodsGetOnly...)

	// ====================
	// AUTHENTICATION ROUTES (Public - No auth required)
	// ====================
	r.HandleFunc("/api/auth/register", handlers.Register).Methods(MethodsPostOnly...)
	r.HandleFunc("/api/auth/login", handlers.Login).Methods(MethodsPostOnly...)

	// ====================
	// PUBLIC READ ROUTES
	// ====================

	// Equipos (consulta)
	r.HandleFunc("/api/equipos/ultimos", handlers.GetUltimosEquipos).Methods(MethodsGetOnly...)
	r.HandleFunc("/api/equipos/buscar", handlers.SearchEquipos).Methods(MethodsPostOnly...)
	r.HandleFunc("/api/equipos/{id}", handlers.GetEquipo).Methods(MethodsGetOnly...)

	// Historial de reparaciones e ingresos
	r.HandleFunc("/api/reparaciones", handlers.GetHistorialEquipo).Methods(MethodsGetOnly...)

	// Unidades
	r.HandleFunc("/api/unidades", handlers.GetAllUnidades).Methods(MethodsGetOnly...)
	r.HandleFunc("/api/unidades/{direccion}", handlers.GetUnidadByDireccion).Methods(MethodsGetOnly...)

	// Objetos varios (consulta)
	r.HandleFunc("/api/objetos", handlers.ListObjetos).Methods(MethodsGetOnly...)
	r.HandleFunc("/api/objetos/{id}", handlers.GetObjeto).Methods(MethodsGetOnly...)

	// Acta de entrega para un equipo individual
	r.HandleFunc("/api/actas/acta-entrega/{id}", handlers.GenerarActaEntrega).Methods(MethodsGetOnly...)

	// Feed de eventos en vivo
	r.HandleFunc("/api/ws/eventos", events.ServeWS)

	// ====================
	// PROTECTED API ROUTES (Require authentication)
	// ====================
	apiRouter := r.PathPrefix(PathAPI).Subrouter()
	apiRouter.Use(middleware.AuthMiddleware)

	// ====================
	// EQUIPOS
	// ====================
	apiRouter.HandleFunc("/equipos", handlers.CreateEquipo).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/equipos/{id}", handlers.UpdateEquipo).Methods(MethodsPutOnly...)
	apiRouter.HandleFunc("/equipos/{id}", handlers.DeleteEquipo).Methods(MethodsDeleteOnly...)
	apiRouter.HandleFunc("/equipos/{id}/ingreso", handlers.RegistrarIngreso).Methods(MethodsPostOnly...)

	// ====================
	// REPARACIONES
	// ====================
	apiRouter.HandleFunc("/reparaciones/iniciar", handlers.IniciarReparacion).Methods(MethodsPostOnly...)

	// ====================
	// ACTAS
	// ====================
	apiRouter.HandleFunc("/actas/generar", handlers.GenerarActa).Methods(MethodsPostOnly...)

	// ====================
	// OBJETOS VARIOS
	// ====================
	apiRouter.HandleFunc("/objetos", handlers.CreateObjeto).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/objetos/{id}", handlers.UpdateObjeto).Methods(MethodsPutOnly...)
	apiRouter.HandleFunc("/objetos/{id}", handlers.DeleteObjeto).Methods(MethodsDeleteOnly...)

	// ====================
	// UNIDADES
	// ====================
	apiRouter.HandleFunc("/unidades", handlers.CreateUnidad).Methods(MethodsPostOnly...)
}
