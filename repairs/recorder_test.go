package repairs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alex-109/Genchi-Bitacora-Back/models"
	"github.com/Alex-109/Genchi-Bitacora-Back/sequence"
)

type fakeEquipoStore struct {
	equipos map[int64]*models.Equipo
	saved   []*models.Equipo
	saveErr error
}

func newFakeEquipoStore(equipos ...*models.Equipo) *fakeEquipoStore {
	s := &fakeEquipoStore{equipos: make(map[int64]*models.Equipo)}
	for _, e := range equipos {
		s.equipos[e.ID] = e
	}
	return s
}

func (s *fakeEquipoStore) FindByID(_ context.Context, id int64) (*models.Equipo, error) {
	e, ok := s.equipos[id]
	if !ok {
		return nil, ErrNotFound
	}
	copia := *e
	return &copia, nil
}

func (s *fakeEquipoStore) ExistsOther(_ context.Context, field, value string, excludeID int64) (bool, error) {
	for _, e := range s.equipos {
		if e.ID == excludeID {
			continue
		}
		switch field {
		case "ip":
			if e.IP == value {
				return true, nil
			}
		case "nombre_equipo":
			if e.NombreEquipo == value {
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *fakeEquipoStore) Save(_ context.Context, e *models.Equipo) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	copia := *e
	s.equipos[e.ID] = &copia
	s.saved = append(s.saved, &copia)
	return nil
}

type fakeReparacionStore struct {
	inserted  []*models.Reparacion
	insertErr error
}

func (s *fakeReparacionStore) Insert(_ context.Context, r *models.Reparacion) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = append(s.inserted, r)
	return nil
}

func TestApplyEquipoNotFound(t *testing.T) {
	equipos := newFakeEquipoStore()
	eventos := &fakeReparacionStore{}
	rec := NewRecorder(equipos, eventos, sequence.NewMemory())

	_, err := rec.Apply(context.Background(), 99, map[string]string{"marca": "HP"}, "", "11.111.111-1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, eventos.inserted)
}

func TestApplyNoChangesNoObs(t *testing.T) {
	equipo := &models.Equipo{ID: 5, TipoEquipo: models.TipoPC, Marca: "HP", RAM: "8"}
	equipos := newFakeEquipoStore(equipo)
	eventos := &fakeReparacionStore{}
	gen := sequence.NewMemory()
	gen.Seed(sequence.NumActaGlobal, 41)
	rec := NewRecorder(equipos, eventos, gen)

	// Proposed values equal the current ones; observation blank.
	_, err := rec.Apply(context.Background(), 5, map[string]string{"marca": "HP", "ram": "8"}, "   ", "")
	assert.ErrorIs(t, err, ErrNoChanges)

	assert.Empty(t, equipos.saved, "equipo must not be written")
	assert.Empty(t, eventos.inserted, "no event must be created")

	// Counter untouched.
	v, err := gen.Next(context.Background(), sequence.NumActaGlobal)
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)
}

func TestApplyObsOnlyCreatesEventWithoutSave(t *testing.T) {
	equipo := &models.Equipo{ID: 5, TipoEquipo: models.TipoPC, Marca: "HP"}
	equipos := newFakeEquipoStore(equipo)
	eventos := &fakeReparacionStore{}
	rec := NewRecorder(equipos, eventos, sequence.NewMemory())

	repa, err := rec.Apply(context.Background(), 5, map[string]string{}, "se limpio el ventilador", "11.111.111-1")
	require.NoError(t, err)

	assert.Empty(t, equipos.saved, "no diff, no write-through")
	require.Len(t, eventos.inserted, 1)
	assert.Empty(t, repa.Cambios)
	assert.Equal(t, "se limpio el ventilador", repa.Obs)
	assert.Equal(t, int64(1), repa.ContadorNumActa)
}

func TestApplyRecordsDiffAndMutates(t *testing.T) {
	equipo := &models.Equipo{
		ID:         5,
		TipoEquipo: models.TipoPC,
		Marca:      "HP",
		RAM:        "8",
		CPU:        "i3-9100",
	}
	equipos := newFakeEquipoStore(equipo)
	eventos := &fakeReparacionStore{}
	gen := sequence.NewMemory()
	gen.Seed(sequence.NumActaGlobal, 41)
	rec := NewRecorder(equipos, eventos, gen)

	cambios := map[string]string{
		"ram":   "16",
		"marca": "HP", // unchanged, must not appear in the diff
	}
	repa, err := rec.Apply(context.Background(), 5, cambios, "ampliacion de memoria", "11.111.111-1")
	require.NoError(t, err)

	require.Len(t, repa.Cambios, 1)
	assert.Equal(t, models.FieldChange{Antes: "8", Despues: "16"}, repa.Cambios["ram"])
	assert.Equal(t, int64(42), repa.ContadorNumActa)
	assert.NotEmpty(t, repa.IDRepa)

	guardado := equipos.equipos[5]
	assert.Equal(t, "16", guardado.RAM)
	assert.Equal(t, "HP", guardado.Marca)
	assert.Equal(t, "i3-9100", guardado.CPU, "untouched fields stay untouched")
	require.Len(t, eventos.inserted, 1)
}

func TestApplyIPConflict(t *testing.T) {
	objetivo := &models.Equipo{ID: 5, TipoEquipo: models.TipoPC, IP: "192.168.1.10"}
	otro := &models.Equipo{ID: 9, TipoEquipo: models.TipoPC, IP: "192.168.1.20"}
	equipos := newFakeEquipoStore(objetivo, otro)
	eventos := &fakeReparacionStore{}
	gen := sequence.NewMemory()
	rec := NewRecorder(equipos, eventos, gen)

	_, err := rec.Apply(context.Background(), 5, map[string]string{"ip": "192.168.1.20"}, "", "")
	assert.ErrorIs(t, err, ErrConflict)

	assert.Equal(t, "192.168.1.10", equipos.equipos[5].IP, "no changes applied")
	assert.Empty(t, eventos.inserted)

	v, err := gen.Next(context.Background(), sequence.NumActaGlobal)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v, "counter untouched on conflict")
}

func TestApplyHostnameConflict(t *testing.T) {
	objetivo := &models.Equipo{ID: 5, TipoEquipo: models.TipoPC, NombreEquipo: "PC-CONTA-01"}
	otro := &models.Equipo{ID: 9, TipoEquipo: models.TipoPC, NombreEquipo: "PC-CONTA-02"}
	equipos := newFakeEquipoStore(objetivo, otro)
	eventos := &fakeReparacionStore{}
	rec := NewRecorder(equipos, eventos, sequence.NewMemory())

	_, err := rec.Apply(context.Background(), 5, map[string]string{"nombre_equipo": "PC-CONTA-02"}, "", "")
	assert.ErrorIs(t, err, ErrConflict)
	assert.Empty(t, eventos.inserted)
}

func TestApplySameHostnameNotConflict(t *testing.T) {
	// Re-proposing the current hostname is not a conflict against itself.
	equipo := &models.Equipo{ID: 5, TipoEquipo: models.TipoPC, NombreEquipo: "PC-CONTA-01"}
	equipos := newFakeEquipoStore(equipo)
	eventos := &fakeReparacionStore{}
	rec := NewRecorder(equipos, eventos, sequence.NewMemory())

	repa, err := rec.Apply(context.Background(), 5, map[string]string{"nombre_equipo": "PC-CONTA-01"}, "revision general", "")
	require.NoError(t, err)
	assert.Empty(t, repa.Cambios)
}

func TestApplyUnknownFieldIgnored(t *testing.T) {
	equipo := &models.Equipo{ID: 5, TipoEquipo: models.TipoPC}
	equipos := newFakeEquipoStore(equipo)
	eventos := &fakeReparacionStore{}
	rec := NewRecorder(equipos, eventos, sequence.NewMemory())

	_, err := rec.Apply(context.Background(), 5, map[string]string{"campo_inexistente": "x"}, "", "")
	assert.ErrorIs(t, err, ErrNoChanges)
}

func TestApplySaveFailureSkipsEventAndCounter(t *testing.T) {
	equipo := &models.Equipo{ID: 5, TipoEquipo: models.TipoPC, RAM: "8"}
	equipos := newFakeEquipoStore(equipo)
	equipos.saveErr = errors.New("write failed")
	eventos := &fakeReparacionStore{}
	gen := sequence.NewMemory()
	rec := NewRecorder(equipos, eventos, gen)

	_, err := rec.Apply(context.Background(), 5, map[string]string{"ram": "16"}, "", "")
	require.Error(t, err)
	assert.Empty(t, eventos.inserted, "no orphan event for a never-saved mutation")

	v, err := gen.Next(context.Background(), sequence.NumActaGlobal)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v, "counter untouched when the equipo write fails")
}

func TestApplyEventFailureLeavesGap(t *testing.T) {
	// Accepted behavior: the equipo write succeeded and the number was drawn,
	// so a failed event insert leaves a gap in the numbering.
	equipo := &models.Equipo{ID: 5, TipoEquipo: models.TipoPC, RAM: "8"}
	equipos := newFakeEquipoStore(equipo)
	eventos := &fakeReparacionStore{insertErr: errors.New("insert failed")}
	gen := sequence.NewMemory()
	rec := NewRecorder(equipos, eventos, gen)

	_, err := rec.Apply(context.Background(), 5, map[string]string{"ram": "16"}, "", "")
	require.Error(t, err)

	assert.Equal(t, "16", equipos.equipos[5].RAM, "equipo write already happened")

	v, err := gen.Next(context.Background(), sequence.NumActaGlobal)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v, "number 1 was consumed and is never reused")
}
