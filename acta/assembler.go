// acta/assembler.go

// Package acta assembles delivery receipts (actas de entrega): it collects
// the selected equipos and objetos varios, shapes their attributes into the
// description blocks of the document template and numbers the document from
// the global sequence. One number is consumed per document, regardless of how
// many items it lists.
package acta

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Alex-109/Genchi-Bitacora-Back/models"
	"github.com/Alex-109/Genchi-Bitacora-Back/sequence"
)

// ErrSinItems: the receipt would list nothing.
var ErrSinItems = errors.New("no hay equipos ni objetos para el acta")

// UnidadPorDefecto closes the unit fallback chain when neither the first
// equipo nor the first objeto carries one.
const UnidadPorDefecto = "Valparaíso"

// Default signer, used when the request supplies none.
const (
	EncargadoPorDefecto = "PAOLA A. GUERRA CHANAY"
	CargoPorDefecto     = "Encargada de Informática"
)

// Renderer fills the fixed document template with assembled fields.
type Renderer interface {
	Render(data map[string]interface{}) ([]byte, error)
}

// HistoryStore resolves the most recent repair observation for an equipo.
type HistoryStore interface {
	// LatestObs returns the observation of the newest history entry, or
	// ok=false when the equipo has no history at all.
	LatestObs(ctx context.Context, idEquipo int64) (obs string, ok bool, err error)
}

// Encargado is the person signing the receipt.
type Encargado struct {
	Nombre string
	Cargo  string
}

// Documento is a rendered receipt.
type Documento struct {
	Contenido []byte
	NumActa   int64
	Numero    string
	Filename  string
}

type Assembler struct {
	seq      sequence.Generator
	history  HistoryStore
	renderer Renderer
	now      func() time.Time
}

func NewAssembler(seq sequence.Generator, history HistoryStore, renderer Renderer) *Assembler {
	return &Assembler{
		seq:      seq,
		history:  history,
		renderer: renderer,
		now:      time.Now,
	}
}

// Generate numbers and renders a receipt for the given items, in the order
// supplied (equipos first). The sequence number is drawn once, after the item
// set is known to be non-empty.
func (a *Assembler) Generate(ctx context.Context, equipos []*models.Equipo, objetos []*models.ObjetoVario, enc Encargado) (*Documento, error) {
	if len(equipos)+len(objetos) == 0 {
		return nil, ErrSinItems
	}

	items := make([]map[string]interface{}, 0, len(equipos)+len(objetos))
	for _, e := range equipos {
		obs, ok, err := a.history.LatestObs(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		if !ok {
			obs = ""
		}
		items = append(items, EquipoItem{Equipo: e, Obs: obs}.templateData())
	}
	for _, o := range objetos {
		items = append(items, ObjetoItem{Objeto: o}.templateData())
	}

	numActa, err := a.seq.Next(ctx, sequence.NumActaGlobal)
	if err != nil {
		return nil, err
	}

	ahora := a.now()
	numero := FormatNumActa(numActa, ahora.Year())

	if enc.Nombre == "" {
		enc.Nombre = EncargadoPorDefecto
	}
	if enc.Cargo == "" {
		enc.Cargo = CargoPorDefecto
	}

	data := map[string]interface{}{
		"num_acta":         numero,
		"fecha":            FormatFechaLarga(ahora),
		"unidad":           resolverUnidad(equipos, objetos),
		"nombre_encargado": enc.Nombre,
		"cargo":            enc.Cargo,
		"items":            items,
	}

	contenido, err := a.renderer.Render(data)
	if err != nil {
		return nil, err
	}

	return &Documento{
		Contenido: contenido,
		NumActa:   numActa,
		Numero:    numero,
		Filename:  fmt.Sprintf("acta-entrega-%03d-%d.docx", numActa, ahora.Year()),
	}, nil
}

// resolverUnidad: first equipo's unit, then first objeto's, then the default.
func resolverUnidad(equipos []*models.Equipo, objetos []*models.ObjetoVario) string {
	if len(equipos) > 0 && equipos[0].NombreUnidad != "" {
		return equipos[0].NombreUnidad
	}
	if len(objetos) > 0 && objetos[0].Unidad != "" {
		return objetos[0].Unidad
	}
	return UnidadPorDefecto
}
