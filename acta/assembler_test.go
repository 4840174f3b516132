package acta

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alex-109/Genchi-Bitacora-Back/models"
	"github.com/Alex-109/Genchi-Bitacora-Back/sequence"
)

type fakeHistory struct {
	obs map[int64]string
}

func (f *fakeHistory) LatestObs(_ context.Context, id int64) (string, bool, error) {
	obs, ok := f.obs[id]
	return obs, ok, nil
}

// captureRenderer records the data it was asked to render.
type captureRenderer struct {
	data map[string]interface{}
}

func (r *captureRenderer) Render(data map[string]interface{}) ([]byte, error) {
	r.data = data
	return []byte("DOCX"), nil
}

func newTestAssembler(gen sequence.Generator, history HistoryStore, renderer Renderer, now time.Time) *Assembler {
	a := NewAssembler(gen, history, renderer)
	a.now = func() time.Time { return now }
	return a
}

func items(t *testing.T, data map[string]interface{}) []map[string]interface{} {
	t.Helper()
	list, ok := data["items"].([]map[string]interface{})
	require.True(t, ok, "items missing from template data")
	return list
}

func TestGenerateRejectsEmptySelection(t *testing.T) {
	a := NewAssembler(sequence.NewMemory(), &fakeHistory{}, &captureRenderer{})
	_, err := a.Generate(context.Background(), nil, nil, Encargado{})
	assert.ErrorIs(t, err, ErrSinItems)
}

func TestGenerateConsumesOneNumberPerBatch(t *testing.T) {
	gen := sequence.NewMemory()
	gen.Seed(sequence.NumActaGlobal, 41)
	r := &captureRenderer{}
	now := time.Date(2026, time.August, 28, 10, 0, 0, 0, time.UTC)
	a := newTestAssembler(gen, &fakeHistory{}, r, now)

	equipos := []*models.Equipo{
		{ID: 5, TipoEquipo: models.TipoPC, Marca: "HP"},
		{ID: 9, TipoEquipo: models.TipoImpresora, Marca: "Brother"},
	}
	doc, err := a.Generate(context.Background(), equipos, nil, Encargado{})
	require.NoError(t, err)

	assert.Equal(t, int64(42), doc.NumActa)
	assert.Equal(t, "042/2026", doc.Numero)
	assert.Equal(t, "acta-entrega-042-2026.docx", doc.Filename)
	assert.Equal(t, []byte("DOCX"), doc.Contenido)

	// Exactly one increment for the whole batch.
	v, err := gen.Next(context.Background(), sequence.NumActaGlobal)
	require.NoError(t, err)
	assert.Equal(t, int64(43), v)

	list := items(t, r.data)
	require.Len(t, list, 2)
	assert.Equal(t, "PC HP", list[0]["titulo"])
	assert.Equal(t, "IMPRESORA Brother", list[1]["titulo"])
}

func TestGeneratePrinterHasNoComputerSpecs(t *testing.T) {
	r := &captureRenderer{}
	a := newTestAssembler(sequence.NewMemory(), &fakeHistory{}, r, time.Now())

	impresora := &models.Equipo{
		ID:         3,
		TipoEquipo: models.TipoImpresora,
		Marca:      "Brother",
		Toner:      "TN-2370",
		// Stale computer fields must never leak into a printer block.
		CPU: "i5-8400",
		RAM: "8",
	}
	_, err := a.Generate(context.Background(), []*models.Equipo{impresora}, nil, Encargado{})
	require.NoError(t, err)

	it := items(t, r.data)[0]
	assert.Equal(t, false, it["es_pc"])
	assert.Equal(t, true, it["es_impresora"])

	detalles := it["detalles"].([]string)
	for _, d := range detalles {
		assert.NotContains(t, d, "CPU")
		assert.NotContains(t, d, "RAM")
	}
	assert.Contains(t, detalles, "Tóner TN-2370")
}

func TestGenerateBareEquipoGetsPlaceholder(t *testing.T) {
	r := &captureRenderer{}
	a := newTestAssembler(sequence.NewMemory(), &fakeHistory{}, r, time.Now())

	pelado := &models.Equipo{ID: 7, TipoEquipo: models.TipoPC}
	_, err := a.Generate(context.Background(), []*models.Equipo{pelado}, nil, Encargado{})
	require.NoError(t, err)

	it := items(t, r.data)[0]
	assert.Equal(t, []string{"sin información adicional"}, it["detalles"])
}

func TestGenerateObservationResolution(t *testing.T) {
	history := &fakeHistory{obs: map[int64]string{5: "se reemplazó el disco"}}
	r := &captureRenderer{}
	a := newTestAssembler(sequence.NewMemory(), history, r, time.Now())

	equipos := []*models.Equipo{
		{ID: 5, TipoEquipo: models.TipoPC},
		{ID: 6, TipoEquipo: models.TipoPC}, // no history
	}
	objetos := []*models.ObjetoVario{{ID: 1, Nombre: "Monitor LG 24"}}

	_, err := a.Generate(context.Background(), equipos, objetos, Encargado{})
	require.NoError(t, err)

	list := items(t, r.data)
	require.Len(t, list, 3)
	assert.Equal(t, "se reemplazó el disco", list[0]["obs"])
	assert.Equal(t, "sin observaciones", list[1]["obs"])
	assert.Equal(t, "sin observaciones", list[2]["obs"], "objetos never carry observations")
	assert.Equal(t, true, list[2]["es_objeto"])
}

func TestGenerateUnidadFallbackChain(t *testing.T) {
	cases := []struct {
		name    string
		equipos []*models.Equipo
		objetos []*models.ObjetoVario
		want    string
	}{
		{
			name:    "first equipo wins",
			equipos: []*models.Equipo{{ID: 1, TipoEquipo: models.TipoPC, NombreUnidad: "Hospital Quilpué"}},
			objetos: []*models.ObjetoVario{{ID: 1, Nombre: "UPS", Unidad: "CESFAM Placilla"}},
			want:    "Hospital Quilpué",
		},
		{
			name:    "first objeto when equipo has none",
			equipos: []*models.Equipo{{ID: 1, TipoEquipo: models.TipoPC}},
			objetos: []*models.ObjetoVario{{ID: 1, Nombre: "UPS", Unidad: "CESFAM Placilla"}},
			want:    "CESFAM Placilla",
		},
		{
			name:    "default when none",
			equipos: []*models.Equipo{{ID: 1, TipoEquipo: models.TipoPC}},
			want:    "Valparaíso",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := &captureRenderer{}
			a := newTestAssembler(sequence.NewMemory(), &fakeHistory{}, r, time.Now())
			_, err := a.Generate(context.Background(), tc.equipos, tc.objetos, Encargado{})
			require.NoError(t, err)
			assert.Equal(t, tc.want, r.data["unidad"])
		})
	}
}

func TestGenerateDefaultSigner(t *testing.T) {
	r := &captureRenderer{}
	a := newTestAssembler(sequence.NewMemory(), &fakeHistory{}, r, time.Now())

	_, err := a.Generate(context.Background(),
		[]*models.Equipo{{ID: 1, TipoEquipo: models.TipoPC}}, nil,
		Encargado{})
	require.NoError(t, err)
	assert.Equal(t, "PAOLA A. GUERRA CHANAY", r.data["nombre_encargado"])
	assert.Equal(t, "Encargada de Informática", r.data["cargo"])

	_, err = a.Generate(context.Background(),
		[]*models.Equipo{{ID: 1, TipoEquipo: models.TipoPC}}, nil,
		Encargado{Nombre: "J. PÉREZ", Cargo: "Técnico"})
	require.NoError(t, err)
	assert.Equal(t, "J. PÉREZ", r.data["nombre_encargado"])
}

func TestFormatNumActa(t *testing.T) {
	assert.Equal(t, "042/2026", FormatNumActa(42, 2026))
	assert.Equal(t, "007/2025", FormatNumActa(7, 2025))
	assert.Equal(t, "1042/2026", FormatNumActa(1042, 2026))
}

func TestFormatFechaLarga(t *testing.T) {
	f := FormatFechaLarga(time.Date(2025, time.October, 30, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "a 30 días del mes de OCTUBRE del año 2025", f)

	f = FormatFechaLarga(time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "a 2 días del mes de ENERO del año 2026", f)
}

func TestEquipoItemPCSpecLines(t *testing.T) {
	e := &models.Equipo{
		ID:                 5,
		TipoEquipo:         models.TipoNotebook,
		Marca:              "Lenovo",
		Modelo:             "ThinkPad E14",
		CPU:                "i5-1135G7",
		RAM:                "16",
		Almacenamiento:     "512",
		TipoAlmacenamiento: "SSD",
		Serie:              "X1",
		IP:                 "192.168.1.50",
		NumInv:             "INV-0042",
	}
	data := EquipoItem{Equipo: e, Obs: ""}.templateData()

	assert.Equal(t, "NOTEBOOK Lenovo ThinkPad E14", data["titulo"])
	detalles := data["detalles"].([]string)
	assert.Equal(t, []string{
		"CPU i5-1135G7",
		"16 GB RAM",
		"512 SSD",
		"Serie Nº X1",
		"IP 192.168.1.50",
		"Inv. Nº INV-0042",
	}, detalles)
	assert.Equal(t, true, data["es_pc"])
	assert.Equal(t, false, data["es_impresora"])
}

func TestObjetoItemComments(t *testing.T) {
	o := &models.ObjetoVario{ID: 3, Nombre: "Proyector Epson", Comentarios: "con control remoto"}
	data := ObjetoItem{Objeto: o}.templateData()
	assert.Equal(t, "Proyector Epson", data["titulo"])
	assert.Equal(t, []string{"con control remoto"}, data["detalles"])

	vacio := &models.ObjetoVario{ID: 4, Nombre: "Teclado"}
	data = ObjetoItem{Objeto: vacio}.templateData()
	assert.Equal(t, []string{"sin información adicional"}, data["detalles"])
}

// failing renderer should propagate without inventing a document
type failRenderer struct{}

func (failRenderer) Render(map[string]interface{}) ([]byte, error) {
	return nil, fmt.Errorf("template broken")
}

func TestGenerateRendererFailure(t *testing.T) {
	a := newTestAssembler(sequence.NewMemory(), &fakeHistory{}, failRenderer{}, time.Now())
	_, err := a.Generate(context.Background(),
		[]*models.Equipo{{ID: 1, TipoEquipo: models.TipoPC}}, nil, Encargado{})
	assert.Error(t, err)
}
