// models/equipo.go
package models

import "time"

// Equipment categories. The category decides which specific fields apply.
const (
	TipoPC        = "pc"
	TipoImpresora = "impresora"
	TipoNotebook  = "notebook"
)

// Lifecycle states recorded on intake.
const (
	EstadoEnReparacion = "en proceso de reparacion"
	EstadoEsperaRepuesto = "en espera de repuesto"
	EstadoEntregado    = "entregado"
)

// IntakeEvent is one entry of the embedded intake history.
type IntakeEvent struct {
	Fecha  time.Time `bson:"fecha" json:"fecha"`
	Estado string    `bson:"estado" json:"estado"`
}

// Equipo is a tracked IT asset (pc, notebook or impresora). serie, num_inv,
// ip and nombre_equipo carry sparse unique indexes: when present they must be
// unique across the collection, when absent no constraint applies.
type Equipo struct {
	ID           int64  `bson:"id" json:"id"`
	Modelo       string `bson:"modelo,omitempty" json:"modelo,omitempty"`
	Marca        string `bson:"marca,omitempty" json:"marca,omitempty"`
	NumInv       string `bson:"num_inv,omitempty" json:"num_inv,omitempty"`
	Serie        string `bson:"serie,omitempty" json:"serie,omitempty"`
	IP           string `bson:"ip,omitempty" json:"ip,omitempty"`
	NombreUnidad string `bson:"nombre_unidad,omitempty" json:"nombre_unidad,omitempty"`
	Comentarios  string `bson:"comentarios,omitempty" json:"comentarios,omitempty"`
	Estado       string `bson:"estado,omitempty" json:"estado,omitempty"`
	TipoEquipo   string `bson:"tipo_equipo" json:"tipo_equipo"`

	// PC / notebook fields
	NombreEquipo       string `bson:"nombre_equipo,omitempty" json:"nombre_equipo,omitempty"`
	NombreUsuario      string `bson:"nombre_usuario,omitempty" json:"nombre_usuario,omitempty"`
	VerWin             string `bson:"ver_win,omitempty" json:"ver_win,omitempty"`
	Windows            string `bson:"windows,omitempty" json:"windows,omitempty"`
	Antivirus          string `bson:"antivirus,omitempty" json:"antivirus,omitempty"`
	CPU                string `bson:"cpu,omitempty" json:"cpu,omitempty"`
	RAM                string `bson:"ram,omitempty" json:"ram,omitempty"`
	Almacenamiento     string `bson:"almacenamiento,omitempty" json:"almacenamiento,omitempty"`
	TipoAlmacenamiento string `bson:"tipo_almacenamiento,omitempty" json:"tipo_almacenamiento,omitempty"`

	// Impresora fields
	Toner    string `bson:"toner,omitempty" json:"toner,omitempty"`
	Drum     string `bson:"drum,omitempty" json:"drum,omitempty"`
	Conexion string `bson:"conexion,omitempty" json:"conexion,omitempty"`

	HistorialIngresos []IntakeEvent `bson:"historial_ingresos,omitempty" json:"historial_ingresos"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ValidTipoEquipo reports whether t is one of the known categories.
func ValidTipoEquipo(t string) bool {
	switch t {
	case TipoPC, TipoImpresora, TipoNotebook:
		return true
	}
	return false
}
