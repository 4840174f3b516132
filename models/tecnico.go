// models/tecnico.go
package models

import "time"

// Tecnico is a technician account. Rut is the unique national id used as the
// login key and as the reference stored on repair events and actas.
type Tecnico struct {
	Rut          string    `bson:"rut" json:"rut"`
	Nombre       string    `bson:"nombre" json:"nombre"`
	Cargo        string    `bson:"cargo,omitempty" json:"cargo,omitempty"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}
