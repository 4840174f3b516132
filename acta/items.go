// acta/items.go
package acta

import (
	"fmt"
	"strings"

	"github.com/Alex-109/Genchi-Bitacora-Back/models"
)

const (
	sinObservaciones = "sin observaciones"
	sinInformacion   = "sin información adicional"
)

// EquipoItem is a tracked asset selected for a receipt, paired with its
// resolved latest observation.
type EquipoItem struct {
	Equipo *models.Equipo
	Obs    string
}

// ObjetoItem is a miscellaneous object selected for a receipt. Misc objects
// carry no repair history, so the observation always defaults.
type ObjetoItem struct {
	Objeto *models.ObjetoVario
}

func (it EquipoItem) templateData() map[string]interface{} {
	e := it.Equipo
	esPC := e.TipoEquipo == models.TipoPC || e.TipoEquipo == models.TipoNotebook
	esImpresora := e.TipoEquipo == models.TipoImpresora

	var detalles []string
	add := func(format, value string) {
		if value != "" {
			detalles = append(detalles, fmt.Sprintf(format, value))
		}
	}

	if esPC {
		add("CPU %s", e.CPU)
		add("%s GB RAM", e.RAM)
		if e.Almacenamiento != "" {
			alm := e.Almacenamiento
			if e.TipoAlmacenamiento != "" {
				alm += " " + e.TipoAlmacenamiento
			}
			detalles = append(detalles, alm)
		}
		add("Nombre %s", e.NombreEquipo)
		if e.Windows != "" {
			win := e.Windows
			if e.VerWin != "" {
				win += " " + e.VerWin
			}
			detalles = append(detalles, win)
		}
		add("Antivirus %s", e.Antivirus)
	}
	if esImpresora {
		add("Tóner %s", e.Toner)
		add("Drum %s", e.Drum)
		add("Conexión %s", e.Conexion)
	}

	add("Serie Nº %s", e.Serie)
	add("IP %s", e.IP)
	add("Inv. Nº %s", e.NumInv)

	if len(detalles) == 0 {
		detalles = []string{sinInformacion}
	}

	obs := strings.TrimSpace(it.Obs)
	if obs == "" {
		obs = sinObservaciones
	}

	return map[string]interface{}{
		"titulo":       tituloEquipo(e),
		"detalles":     detalles,
		"obs":          obs,
		"es_pc":        esPC,
		"es_impresora": esImpresora,
		"es_objeto":    false,
	}
}

func (it ObjetoItem) templateData() map[string]interface{} {
	detalles := []string{}
	if c := strings.TrimSpace(it.Objeto.Comentarios); c != "" {
		detalles = append(detalles, c)
	}
	if len(detalles) == 0 {
		detalles = []string{sinInformacion}
	}
	return map[string]interface{}{
		"titulo":       it.Objeto.Nombre,
		"detalles":     detalles,
		"obs":          sinObservaciones,
		"es_pc":        false,
		"es_impresora": false,
		"es_objeto":    true,
	}
}

func tituloEquipo(e *models.Equipo) string {
	partes := make([]string, 0, 3)
	if e.TipoEquipo != "" {
		partes = append(partes, strings.ToUpper(e.TipoEquipo))
	}
	if e.Marca != "" {
		partes = append(partes, e.Marca)
	}
	if e.Modelo != "" {
		partes = append(partes, e.Modelo)
	}
	return strings.Join(partes, " ")
}
