package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Alex-109/Genchi-Bitacora-Back/events"
	"github.com/Alex-109/Genchi-Bitacora-Back/models"
	"github.com/Alex-109/Genchi-Bitacora-Back/sequence"
	"github.com/Alex-109/Genchi-Bitacora-Back/utils"
)

// GetEquipo fetches one equipo by its integer id.
func GetEquipo(w http.ResponseWriter, r *http.Request) {
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
		log.Printf("find equipo error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, equipo)
}

// GetUltimosEquipos returns the most recently registered equipos.
func GetUltimosEquipos(w http.ResponseWriter, r *http.Request) {
	limit := int64(5)
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.ParseInt(q, 10, 64); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	cursor, err := equipoCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Printf("ultimos equipos Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	defer cursor.Close(ctx)

	equipos := []models.Equipo{}
	if err = cursor.All(ctx, &equipos); err != nil {
		log.Printf("cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to decode equipos")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, equipos)
}

type SearchEquiposRequest struct {
	TipoEquipo         string `json:"tipo_equipo,omitempty"`
	Marca              string `json:"marca,omitempty"`
	Unidad             string `json:"unidad,omitempty"`
	CPU                string `json:"cpu,omitempty"`
	RAM                string `json:"ram,omitempty"`
	Almacenamiento     string `json:"almacenamiento,omitempty"`
	TipoAlmacenamiento string `json:"tipo_almacenamiento,omitempty"`
	// Q matches against nombre_equipo, ip, serie and num_inv.
	Q string `json:"q,omitempty"`
	// Fuzzy widens substring filters to be diacritic-insensitive.
	Fuzzy       bool   `json:"fuzzy,omitempty"`
	FechaInicio string `json:"fechaInicio,omitempty"`
	FechaFin    string `json:"fechaFin,omitempty"`
	Page        int64  `json:"page,omitempty"`
	Limit       int64  `json:"limit,omitempty"`
}

// SearchEquipos runs the combined filter search with pagination.
func SearchEquipos(w http.ResponseWriter, r *http.Request) {
	var req SearchEquiposRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	substr := func(v string) bson.M {
		pattern := regexp.QuoteMeta(v)
		if req.Fuzzy {
			pattern = utils.AccentInsensitivePattern(v)
		}
		return bson.M{"$regex": pattern, "$options": "i"}
	}

	filter := bson.M{}
	if req.TipoEquipo != "" {
		filter["tipo_equipo"] = req.TipoEquipo
	}
	if req.Marca != "" {
		filter["marca"] = substr(req.Marca)
	}
	if req.Unidad != "" {
		filter["nombre_unidad"] = substr(req.Unidad)
	}
	if req.CPU != "" {
		filter["cpu"] = substr(req.CPU)
	}
	if req.RAM != "" {
		filter["ram"] = req.RAM
	}
	if req.Almacenamiento != "" {
		filter["almacenamiento"] = req.Almacenamiento
	}
	if req.TipoAlmacenamiento != "" {
		filter["tipo_almacenamiento"] = substr(req.TipoAlmacenamiento)
	}
	if req.Q != "" {
		q := substr(req.Q)
		filter["$or"] = bson.A{
			bson.M{"nombre_equipo": q},
			bson.M{"ip": q},
			bson.M{"serie": q},
			bson.M{"num_inv": q},
		}
	}

	if rango, ok := dateRange(req.FechaInicio, req.FechaFin); ok {
		// Created or repaired within the range: updatedAt moves on every
		// repair write-through.
		created := bson.M{"createdAt": rango}
		updated := bson.M{"updatedAt": rango}
		if or, has := filter["$or"]; has {
			filter["$and"] = bson.A{
				bson.M{"$or": or},
				bson.M{"$or": bson.A{created, updated}},
			}
			delete(filter, "$or")
		} else {
			filter["$or"] = bson.A{created, updated}
		}
	}

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	total, err := equipoCollection.CountDocuments(ctx, filter)
	if err != nil {
		log.Printf("search count error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((req.Page - 1) * req.Limit).
		SetLimit(req.Limit)

	cursor, err := equipoCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Printf("search Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	defer cursor.Close(ctx)

	equipos := []models.Equipo{}
	if err = cursor.All(ctx, &equipos); err != nil {
		log.Printf("cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to decode equipos")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"data":  equipos,
		"total": total,
		"page":  req.Page,
		"limit": req.Limit,
	})
}

// CreateEquipo registers a new equipo and assigns its sequential id.
func CreateEquipo(w http.ResponseWriter, r *http.Request) {
	var equipo models.Equipo
	if err := json.NewDecoder(r.Body).Decode(&equipo); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if !models.ValidTipoEquipo(equipo.TipoEquipo) {
		utils.RespondWithError(w, http.StatusBadRequest, "tipo_equipo es obligatorio: pc, notebook o impresora")
		return
	}
	if equipo.Marca == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "marca es obligatoria")
		return
	}
	if equipo.NombreUnidad == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "nombre_unidad es obligatorio")
		return
	}
	if equipo.IP != "" && !utils.ValidIPv4(equipo.IP) {
		utils.RespondWithError(w, http.StatusBadRequest, "formato de IP invalido")
		return
	}

	stripCategoryFields(&equipo)

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	// Uniqueness pre-checks; blank values are exempt.
	uniques := map[string]string{
		"serie":         equipo.Serie,
		"num_inv":       equipo.NumInv,
		"ip":            equipo.IP,
		"nombre_equipo": equipo.NombreEquipo,
	}
	for field, value := range uniques {
		if value == "" {
			continue
		}
		count, err := equipoCollection.CountDocuments(ctx, bson.M{field: value})
		if err != nil {
			log.Printf("unique check error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "database error")
			return
		}
		if count > 0 {
			utils.RespondWithError(w, http.StatusConflict, "valor duplicado en campo "+field)
			return
		}
	}

	id, err := seqGen.Next(ctx, sequence.EquipoID)
	if err != nil {
		log.Printf("equipo id sequence error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to assign equipo id")
		return
	}

	now := time.Now().UTC()
	equipo.ID = id
	equipo.CreatedAt = now
	equipo.UpdatedAt = now
	if equipo.HistorialIngresos == nil {
		equipo.HistorialIngresos = []models.IntakeEvent{}
	}

	if _, err := equipoCollection.InsertOne(ctx, equipo); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "la serie, IP o nombre ya existe")
			return
		}
		log.Printf("insert equipo error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create equipo")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, equipo)
}

type UpdateEquipoRequest struct {
	Modelo             string `json:"modelo,omitempty"`
	Marca              string `json:"marca,omitempty"`
	NumInv             string `json:"num_inv,omitempty"`
	Serie              string `json:"serie,omitempty"`
	IP                 string `json:"ip,omitempty"`
	NombreUnidad       string `json:"nombre_unidad,omitempty"`
	Comentarios        string `json:"comentarios,omitempty"`
	Estado             string `json:"estado,omitempty"`
	NombreEquipo       string `json:"nombre_equipo,omitempty"`
	NombreUsuario      string `json:"nombre_usuario,omitempty"`
	VerWin             string `json:"ver_win,omitempty"`
	Windows            string `json:"windows,omitempty"`
	Antivirus          string `json:"antivirus,omitempty"`
	CPU                string `json:"cpu,omitempty"`
	RAM                string `json:"ram,omitempty"`
	Almacenamiento     string `json:"almacenamiento,omitempty"`
	TipoAlmacenamiento string `json:"tipo_almacenamiento,omitempty"`
	Toner              string `json:"toner,omitempty"`
	Drum               string `json:"drum,omitempty"`
	Conexion           string `json:"conexion,omitempty"`
}

// UpdateEquipo applies a partial field replace by integer id.
func UpdateEquipo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid equipo id")
		return
	}

	var req UpdateEquipoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if req.IP != "" && !utils.ValidIPv4(req.IP) {
		utils.RespondWithError(w, http.StatusBadRequest, "formato de IP invalido")
		return
	}

	update := bson.M{}
	campos := map[string]string{
		"modelo":              req.Modelo,
		"marca":               req.Marca,
		"num_inv":             req.NumInv,
		"serie":               req.Serie,
		"ip":                  req.IP,
		"nombre_unidad":       req.NombreUnidad,
		"comentarios":         req.Comentarios,
		"estado":              req.Estado,
		"nombre_equipo":       req.NombreEquipo,
		"nombre_usuario":      req.NombreUsuario,
		"ver_win":             req.VerWin,
		"windows":             req.Windows,
		"antivirus":           req.Antivirus,
		"cpu":                 req.CPU,
		"ram":                 req.RAM,
		"almacenamiento":      req.Almacenamiento,
		"tipo_almacenamiento": req.TipoAlmacenamiento,
		"toner":               req.Toner,
		"drum":                req.Drum,
		"conexion":            req.Conexion,
	}
	for campo, valor := range campos {
		if valor != "" {
			update[campo] = valor
		}
	}

	if len(update) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	// Uniqueness pre-checks against other equipos for the touched fields.
	for _, field := range []string{"serie", "num_inv", "ip", "nombre_equipo"} {
		value, touched := update[field]
		if !touched {
			continue
		}
		count, err := equipoCollection.CountDocuments(ctx, bson.M{
			field: value,
			"id":  bson.M{"$ne": id},
		})
		if err != nil {
			log.Printf("unique check error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "database error")
			return
		}
		if count > 0 {
			utils.RespondWithError(w, http.StatusConflict, "valor duplicado en campo "+field)
			return
		}
	}

	update["updatedAt"] = time.Now().UTC()

	result, err := equipoCollection.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": update})
	if err != nil {
		log.Printf("update equipo error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to update equipo")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "equipo no encontrado")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "equipo actualizado"})
}

// DeleteEquipo removes an equipo and all its repair history, reporting how
// many history entries went with it. History first, parent second: a failure
// in between leaves an equipo without history, never orphaned history.
func DeleteEquipo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid equipo id")
		return
	}

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	count, err := equipoCollection.CountDocuments(ctx, bson.M{"id": id})
	if err != nil {
		log.Printf("delete equipo lookup error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database error")
		return
	}
	if count == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "equipo no encontrado")
		return
	}

	repas, err := reparacionCollection.DeleteMany(ctx, bson.M{"id_equipo": id})
	if err != nil {
		log.Printf("cascade delete reparaciones error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to delete reparaciones")
		return
	}

	if _, err := equipoCollection.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		log.Printf("delete equipo error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to delete equipo")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":                 "equipo eliminado",
		"reparaciones_eliminadas": repas.DeletedCount,
	})
}

type RegistrarIngresoRequest struct {
	Estado string `json:"estado"`
	Fecha  string `json:"fecha,omitempty"` // RFC 3339; defaults to now
}

// RegistrarIngreso appends an intake event and moves the equipo to the new
// lifecycle state.
func RegistrarIngreso(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid equipo id")
		return
	}

	var req RegistrarIngresoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Estado == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "estado es obligatorio")
		return
	}

	fecha := time.Now().UTC()
	if req.Fecha != "" {
		parsed, err := time.Parse(time.RFC3339, req.Fecha)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "formato de fecha invalido")
			return
		}
		fecha = parsed.UTC()
	}

	ingreso := models.IntakeEvent{Fecha: fecha, Estado: req.Estado}

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	result, err := equipoCollection.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$push": bson.M{"historial_ingresos": ingreso},
		"$set":  bson.M{"estado": req.Estado, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		log.Printf("registrar ingreso error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to register ingreso")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "equipo no encontrado")
		return
	}

	events.Broadcast("ingreso", id, ingreso)

	utils.RespondWithJSON(w, http.StatusCreated, ingreso)
}

// stripCategoryFields clears the attributes that do not belong to the
// equipo's category, so a printer never carries stale PC specs and vice
// versa.
func stripCategoryFields(e *models.Equipo) {
	switch e.TipoEquipo {
	case models.TipoPC, models.TipoNotebook:
		e.Toner = ""
		e.Drum = ""
		e.Conexion = ""
	case models.TipoImpresora:
		e.NombreEquipo = ""
		e.NombreUsuario = ""
		e.VerWin = ""
		e.Windows = ""
		e.Antivirus = ""
		e.CPU = ""
		e.RAM = ""
		e.Almacenamiento = ""
		e.TipoAlmacenamiento = ""
	}
}

func dateRange(inicio, fin string) (bson.M, bool) {
	rango := bson.M{}
	if inicio != "" {
		if t, err := time.Parse("2006-01-02", inicio); err == nil {
			rango["$gte"] = t
		}
	}
	if fin != "" {
		if t, err := time.Parse("2006-01-02", fin); err == nil {
			rango["$lte"] = t.Add(24*time.Hour - time.Millisecond)
		}
	}
	return rango, len(rango) > 0
}
