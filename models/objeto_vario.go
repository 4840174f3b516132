// models/objeto_vario.go
package models

import "time"

// ObjetoVario is a miscellaneous inventory item (anything that is not a
// tracked equipo): a monitor, a UPS, furniture. It carries no repair history.
type ObjetoVario struct {
	ID          int64     `bson:"id" json:"id"`
	Nombre      string    `bson:"nombre" json:"nombre"`
	Unidad      string    `bson:"unidad" json:"unidad"`
	Comentarios string    `bson:"comentarios,omitempty" json:"comentarios,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
