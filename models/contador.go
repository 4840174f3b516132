// models/contador.go
package models

// Contador is a named monotonic counter. Seq only ever moves forward, via an
// atomic increment at the store layer; issued values are never reused even
// when the consuming record fails to persist.
type Contador struct {
	ID  string `bson:"_id" json:"_id"`
	Seq int64  `bson:"seq" json:"seq"`
}
