package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ConectaSaudeBR/rede-scheduler/internal/httperr"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"

	domain "github.com/ConectaSaudeBR/rede-scheduler/internal/domain/schedule"
)

// ======================================================
// FAKE WRITER
// ======================================================

type fakeWriter struct {
	templates  map[uint][]models.ScheduleTemplate
	exceptions []models.ScheduleException

	activeBookings int
	nextID         uint

	getErr      error
	deletedTree []uint
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{templates: make(map[uint][]models.ScheduleTemplate)}
}

func (f *fakeWriter) CreateException(
	ctx context.Context,
	exc *models.ScheduleException,
	children []models.ScheduleException,
) error {

	f.nextID++
	exc.ID = f.nextID
	f.exceptions = append(f.exceptions, *exc)

	for i := range children {
		f.nextID++
		children[i].ID = f.nextID
		children[i].ParentID = &exc.ID
		f.exceptions = append(f.exceptions, children[i])
	}
	return nil
}

func (f *fakeWriter) GetException(
	ctx context.Context,
	providerID uint,
	exceptionID uint,
) (*models.ScheduleException, error) {

	if f.getErr != nil {
		return nil, f.getErr
	}
	for i := range f.exceptions {
		e := &f.exceptions[i]
		if e.ID == exceptionID && e.ProviderID == providerID {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeWriter) DeleteExceptionTree(ctx context.Context, exceptionID uint) error {
	f.deletedTree = append(f.deletedTree, exceptionID)

	var kept []models.ScheduleException
	for _, e := range f.exceptions {
		if e.ID == exceptionID || (e.ParentID != nil && *e.ParentID == exceptionID) {
			continue
		}
		kept = append(kept, e)
	}
	f.exceptions = kept
	return nil
}

func (f *fakeWriter) CountActiveBookingsInRange(
	ctx context.Context,
	providerID uint,
	from, to time.Time,
) (int, error) {
	return f.activeBookings, nil
}

func (f *fakeWriter) ReplaceTemplates(
	ctx context.Context,
	providerID uint,
	templates []models.ScheduleTemplate,
) error {
	f.templates[providerID] = templates
	return nil
}

var _ domain.Writer = (*fakeWriter)(nil)

// ======================================================
// TESTS
// ======================================================

func excDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateException(t *testing.T) {
	ctx := context.Background()

	t.Run("ConflitoComAgendamentoAtivo", func(t *testing.T) {
		w := newFakeWriter()
		w.activeBookings = 2
		uc := NewCreateException(w)

		_, err := uc.Execute(ctx, CreateExceptionInput{
			ProviderID: 1,
			StartDate:  excDate(2026, 9, 10),
			EndDate:    excDate(2026, 9, 12),
		})
		if !httperr.IsBusiness(err, "exception_conflicts_with_bookings") {
			t.Fatalf("expected exception_conflicts_with_bookings, got %v", err)
		}
		if len(w.exceptions) != 0 {
			t.Fatalf("rejeição não pode deixar estado: %d", len(w.exceptions))
		}
	})

	t.Run("DefaultsDeTipoEPadrao", func(t *testing.T) {
		w := newFakeWriter()
		uc := NewCreateException(w)

		exc, err := uc.Execute(ctx, CreateExceptionInput{
			ProviderID: 1,
			StartDate:  excDate(2026, 9, 10),
			EndDate:    excDate(2026, 9, 10),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if exc.Type != "other" || exc.RecurrencePattern != models.RecurrenceNone {
			t.Fatalf("defaults errados: type=%q pattern=%q", exc.Type, exc.RecurrencePattern)
		}
	})

	t.Run("RecorrenciaGravaFilhasComVinculo", func(t *testing.T) {
		w := newFakeWriter()
		uc := NewCreateException(w)

		end := excDate(2026, 9, 28)
		exc, err := uc.Execute(ctx, CreateExceptionInput{
			ProviderID:        1,
			StartDate:         excDate(2026, 9, 7),
			EndDate:           excDate(2026, 9, 7),
			RecurrencePattern: models.RecurrenceWeekly,
			RecurrenceEnd:     &end,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// 14, 21 e 28 de setembro
		var children int
		for _, e := range w.exceptions {
			if e.ParentID == nil {
				continue
			}
			children++
			if *e.ParentID != exc.ID {
				t.Fatalf("filha apontando para pai errado: %d", *e.ParentID)
			}
			if e.RecurrencePattern != models.RecurrenceNone {
				t.Fatalf("filha não pode re-expandir: %q", e.RecurrencePattern)
			}
		}
		if children != 3 {
			t.Fatalf("expected 3 filhas, got %d", children)
		}
	})
}

func TestCancelException(t *testing.T) {
	ctx := context.Background()

	t.Run("RemoveArvoreInteira", func(t *testing.T) {
		w := newFakeWriter()
		end := excDate(2026, 9, 21)
		parent, err := NewCreateException(w).Execute(ctx, CreateExceptionInput{
			ProviderID:        1,
			StartDate:         excDate(2026, 9, 7),
			EndDate:           excDate(2026, 9, 7),
			RecurrencePattern: models.RecurrenceWeekly,
			RecurrenceEnd:     &end,
		})
		if err != nil {
			t.Fatalf("setup: %v", err)
		}

		if err := NewCancelException(w).Execute(ctx, 1, parent.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(w.exceptions) != 0 {
			t.Fatalf("filhas deveriam sair junto: %d sobraram", len(w.exceptions))
		}
	})

	t.Run("NaoEncontrada", func(t *testing.T) {
		w := newFakeWriter()
		err := NewCancelException(w).Execute(ctx, 1, 999)
		if !httperr.IsBusiness(err, "exception_not_found") {
			t.Fatalf("expected exception_not_found, got %v", err)
		}
	})

	t.Run("FalhaDeBancoNaoViraNaoEncontrada", func(t *testing.T) {
		w := newFakeWriter()
		w.getErr = errors.New("driver: bad connection")

		err := NewCancelException(w).Execute(ctx, 1, 1)
		if err == nil {
			t.Fatal("falha de infraestrutura deveria subir")
		}
		if _, ok := httperr.BusinessCode(err); ok {
			t.Fatalf("falha de banco não é erro de negócio: %v", err)
		}
	})
}
