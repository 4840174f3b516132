// repairs/fields.go
package repairs

import "github.com/Alex-109/Genchi-Bitacora-Back/models"

type fieldAccessor struct {
	get func(e *models.Equipo) string
	set func(e *models.Equipo, v string)
}

// equipoFields maps wire field names to their equipo attribute. Proposed
// changes naming anything else are ignored rather than rejected, matching the
// registry's strict schema. Integer id, timestamps and the intake history are
// deliberately absent: they are not editable through a repair.
var equipoFields = map[string]fieldAccessor{
	"modelo": {
		get: func(e *models.Equipo) string { return e.Modelo },
		set: func(e *models.Equipo, v string) { e.Modelo = v },
	},
	"marca": {
		get: func(e *models.Equipo) string { return e.Marca },
		set: func(e *models.Equipo, v string) { e.Marca = v },
	},
	"num_inv": {
		get: func(e *models.Equipo) string { return e.NumInv },
		set: func(e *models.Equipo, v string) { e.NumInv = v },
	},
	"serie": {
		get: func(e *models.Equipo) string { return e.Serie },
		set: func(e *models.Equipo, v string) { e.Serie = v },
	},
	"ip": {
		get: func(e *models.Equipo) string { return e.IP },
		set: func(e *models.Equipo, v string) { e.IP = v },
	},
	"nombre_unidad": {
		get: func(e *models.Equipo) string { return e.NombreUnidad },
		set: func(e *models.Equipo, v string) { e.NombreUnidad = v },
	},
	"comentarios": {
		get: func(e *models.Equipo) string { return e.Comentarios },
		set: func(e *models.Equipo, v string) { e.Comentarios = v },
	},
	"estado": {
		get: func(e *models.Equipo) string { return e.Estado },
		set: func(e *models.Equipo, v string) { e.Estado = v },
	},
	"nombre_equipo": {
		get: func(e *models.Equipo) string { return e.NombreEquipo },
		set: func(e *models.Equipo, v string) { e.NombreEquipo = v },
	},
	"nombre_usuario": {
		get: func(e *models.Equipo) string { return e.NombreUsuario },
		set: func(e *models.Equipo, v string) { e.NombreUsuario = v },
	},
	"ver_win": {
		get: func(e *models.Equipo) string { return e.VerWin },
		set: func(e *models.Equipo, v string) { e.VerWin = v },
	},
	"windows": {
		get: func(e *models.Equipo) string { return e.Windows },
		set: func(e *models.Equipo, v string) { e.Windows = v },
	},
	"antivirus": {
		get: func(e *models.Equipo) string { return e.Antivirus },
		set: func(e *models.Equipo, v string) { e.Antivirus = v },
	},
	"cpu": {
		get: func(e *models.Equipo) string { return e.CPU },
		set: func(e *models.Equipo, v string) { e.CPU = v },
	},
	"ram": {
		get: func(e *models.Equipo) string { return e.RAM },
		set: func(e *models.Equipo, v string) { e.RAM = v },
	},
	"almacenamiento": {
		get: func(e *models.Equipo) string { return e.Almacenamiento },
		set: func(e *models.Equipo, v string) { e.Almacenamiento = v },
	},
	"tipo_almacenamiento": {
		get: func(e *models.Equipo) string { return e.TipoAlmacenamiento },
		set: func(e *models.Equipo, v string) { e.TipoAlmacenamiento = v },
	},
	"toner": {
		get: func(e *models.Equipo) string { return e.Toner },
		set: func(e *models.Equipo, v string) { e.Toner = v },
	},
	"drum": {
		get: func(e *models.Equipo) string { return e.Drum },
		set: func(e *models.Equipo, v string) { e.Drum = v },
	},
	"conexion": {
		get: func(e *models.Equipo) string { return e.Conexion },
		set: func(e *models.Equipo, v string) { e.Conexion = v },
	},
}
