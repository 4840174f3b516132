// repairs/recorder.go
package repairs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Alex-109/Genchi-Bitacora-Back/models"
	"github.com/Alex-109/Genchi-Bitacora-Back/sequence"
)

var (
	// ErrNotFound: no equipo with the given id.
	ErrNotFound = errors.New("equipo no encontrado")
	// ErrConflict: a proposed hostname or IP already belongs to another equipo.
	ErrConflict = errors.New("valor duplicado")
	// ErrNoChanges: nothing differs and no observation was supplied.
	ErrNoChanges = errors.New("no hay cambios ni observaciones para registrar")
)

// EquipoStore is the slice of the registry the recorder needs.
type EquipoStore interface {
	FindByID(ctx context.Context, id int64) (*models.Equipo, error)
	// ExistsOther reports whether any equipo other than excludeID holds the
	// given value in the given field.
	ExistsOther(ctx context.Context, field, value string, excludeID int64) (bool, error)
	Save(ctx context.Context, e *models.Equipo) error
}

// ReparacionStore persists history entries.
type ReparacionStore interface {
	Insert(ctx context.Context, r *models.Reparacion) error
}

// Recorder applies a set of proposed field changes to an equipo, recording
// the before/after diff as an immutable history entry numbered from the
// global acta counter.
//
// Concurrency note: two overlapping Apply calls against the same equipo both
// read the same baseline and the later write wins; the later diff then refers
// to already-overwritten values. Single-document writes stay atomic, the
// cross-call ordering is last-write-wins.
type Recorder struct {
	equipos EquipoStore
	eventos ReparacionStore
	seq     sequence.Generator
	now     func() time.Time
}

func NewRecorder(equipos EquipoStore, eventos ReparacionStore, seq sequence.Generator) *Recorder {
	return &Recorder{
		equipos: equipos,
		eventos: eventos,
		seq:     seq,
		now:     time.Now,
	}
}

// Apply loads the equipo, validates the proposed hostname/IP against the rest
// of the registry, computes the diff, writes the mutated equipo back (only
// when something actually changed) and inserts the history entry as the
// terminal step. The sequence number is drawn before the event insert, so a
// failed insert leaves a numbering gap; numbers are never reused.
func (r *Recorder) Apply(ctx context.Context, idEquipo int64, cambios map[string]string, obs, rut string) (*models.Reparacion, error) {
	equipo, err := r.equipos.FindByID(ctx, idEquipo)
	if err != nil {
		return nil, err
	}

	// Uniqueness pre-checks, before anything is mutated.
	if v, ok := cambios["nombre_equipo"]; ok && v != "" && v != equipo.NombreEquipo {
		taken, err := r.equipos.ExistsOther(ctx, "nombre_equipo", v, equipo.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: ya existe otro equipo con ese nombre", ErrConflict)
		}
	}
	if v, ok := cambios["ip"]; ok && v != "" && v != equipo.IP {
		taken, err := r.equipos.ExistsOther(ctx, "ip", v, equipo.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: la direccion IP ya esta registrada en otro equipo", ErrConflict)
		}
	}

	registrados := make(map[string]models.FieldChange)
	for campo, nuevo := range cambios {
		acc, ok := equipoFields[campo]
		if !ok {
			continue
		}
		actual := acc.get(equipo)
		if actual != nuevo {
			registrados[campo] = models.FieldChange{Antes: actual, Despues: nuevo}
			acc.set(equipo, nuevo)
		}
	}

	if len(registrados) == 0 && strings.TrimSpace(obs) == "" {
		return nil, ErrNoChanges
	}

	if len(registrados) > 0 {
		if err := r.equipos.Save(ctx, equipo); err != nil {
			return nil, err
		}
	}

	numActa, err := r.seq.Next(ctx, sequence.NumActaGlobal)
	if err != nil {
		return nil, err
	}

	ahora := r.now().UTC()
	repa := &models.Reparacion{
		IDRepa:          uuid.NewString(),
		IDEquipo:        equipo.ID,
		Obs:             obs,
		Serie:           equipo.Serie,
		Rut:             rut,
		Cambios:         registrados,
		ContadorNumActa: numActa,
		CreatedAt:       ahora,
		UpdatedAt:       ahora,
	}

	if err := r.eventos.Insert(ctx, repa); err != nil {
		return nil, err
	}

	return repa, nil
}
