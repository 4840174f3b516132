// models/reparacion.go
package models

import "time"

// FieldChange records one field of a repair diff: the value read before the
// change was applied and the value written.
type FieldChange struct {
	Antes   interface{} `bson:"antes" json:"antes"`
	Despues interface{} `bson:"despues" json:"despues"`
}

// Reparacion is one immutable history entry for an equipo. Cambios maps the
// changed field names to their before/after pair; ContadorNumActa is the
// sequence number drawn when the entry was created, used later to number the
// delivery receipt. Entries are never updated and are removed only when their
// equipo is deleted.
type Reparacion struct {
	IDRepa          string                 `bson:"id_repa" json:"id_repa"`
	IDEquipo        int64                  `bson:"id_equipo" json:"id_equipo"`
	Obs             string                 `bson:"obs,omitempty" json:"obs,omitempty"`
	Serie           string                 `bson:"serie,omitempty" json:"serie,omitempty"`
	Rut             string                 `bson:"rut,omitempty" json:"rut,omitempty"`
	Cambios         map[string]FieldChange `bson:"cambios" json:"cambios"`
	ContadorNumActa int64                  `bson:"contador_num_acta" json:"contador_num_acta"`
	CreatedAt       time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time              `bson:"updatedAt" json:"updatedAt"`
}
