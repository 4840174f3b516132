// models/acta.go
package models

import "time"

// Acta is the persisted record of a generated delivery receipt. NumActa is
// the globally unique sequence number printed on the document.
type Acta struct {
	IDActa    string    `bson:"id_acta" json:"id_acta"`
	Fecha     time.Time `bson:"fecha" json:"fecha"`
	NumActa   int64     `bson:"num_acta" json:"num_acta"`
	Rut       string    `bson:"rut,omitempty" json:"rut,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
