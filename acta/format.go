// acta/format.go
package acta

import (
	"fmt"
	"time"
)

var meses = [...]string{
	"ENERO", "FEBRERO", "MARZO", "ABRIL", "MAYO", "JUNIO",
	"JULIO", "AGOSTO", "SEPTIEMBRE", "OCTUBRE", "NOVIEMBRE", "DICIEMBRE",
}

// FormatNumActa renders the document number: the sequence value left-padded
// to three digits over the full year, e.g. "042/2026".
func FormatNumActa(seq int64, year int) string {
	return fmt.Sprintf("%03d/%d", seq, year)
}

// FormatFechaLarga renders the long-form Spanish date sentence used in the
// document header: "a 30 días del mes de OCTUBRE del año 2025".
func FormatFechaLarga(t time.Time) string {
	return fmt.Sprintf("a %d días del mes de %s del año %d",
		t.Day(), meses[t.Month()-1], t.Year())
}
