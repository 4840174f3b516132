// models/unidad.go
package models

// Unidad is an organizational unit owning assets. Direccion is the unique
// logical key; equipos reference units by name, not by stored id.
type Unidad struct {
	Direccion  string `bson:"direccion" json:"direccion"`
	NombreU    string `bson:"nombre_u" json:"nombre_u"`
	Area       string `bson:"area,omitempty" json:"area,omitempty"`
	EncargadoU string `bson:"encargado_u,omitempty" json:"encargado_u,omitempty"`
}
