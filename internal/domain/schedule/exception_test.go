package schedule

import (
	"testing"
	"time"

	"github.com/ConectaSaudeBR/rede-scheduler/internal/httperr"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValidateException(t *testing.T) {
	base := func() *models.ScheduleException {
		return &models.ScheduleException{
			ProviderID: 1,
			StartDate:  date(2026, 3, 2),
			EndDate:    date(2026, 3, 6),
			Type:       "vacation",
		}
	}

	t.Run("DiaInteiroValida", func(t *testing.T) {
		if err := ValidateException(base()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("DatasInvertidas", func(t *testing.T) {
		e := base()
		e.EndDate = date(2026, 3, 1)
		if err := ValidateException(e); !httperr.IsBusiness(err, "invalid_date_range") {
			t.Fatalf("expected invalid_date_range, got %v", err)
		}
	})

	t.Run("ParcialPrecisaDosDoisHorarios", func(t *testing.T) {
		e := base()
		e.StartTime = "14:00"
		if err := ValidateException(e); !httperr.IsBusiness(err, "invalid_time_range") {
			t.Fatalf("expected invalid_time_range, got %v", err)
		}
	})

	t.Run("ParcialComHorariosInvertidos", func(t *testing.T) {
		e := base()
		e.StartTime = "16:00"
		e.EndTime = "14:00"
		if err := ValidateException(e); !httperr.IsBusiness(err, "invalid_time_range") {
			t.Fatalf("expected invalid_time_range, got %v", err)
		}
	})

	t.Run("RecorrenciaSemFim", func(t *testing.T) {
		e := base()
		e.RecurrencePattern = models.RecurrenceWeekly
		if err := ValidateException(e); !httperr.IsBusiness(err, "recurrence_end_required") {
			t.Fatalf("expected recurrence_end_required, got %v", err)
		}
	})

	t.Run("FimDaRecorrenciaAntesDoInicio", func(t *testing.T) {
		e := base()
		e.RecurrencePattern = models.RecurrenceWeekly
		re := date(2026, 2, 1)
		e.RecurrenceEnd = &re
		if err := ValidateException(e); !httperr.IsBusiness(err, "invalid_recurrence_end") {
			t.Fatalf("expected invalid_recurrence_end, got %v", err)
		}
	})

	t.Run("PadraoDesconhecido", func(t *testing.T) {
		e := base()
		e.RecurrencePattern = "yearly"
		if err := ValidateException(e); !httperr.IsBusiness(err, "invalid_recurrence_pattern") {
			t.Fatalf("expected invalid_recurrence_pattern, got %v", err)
		}
	})
}

func TestExpandRecurrence(t *testing.T) {

	t.Run("SemRecorrenciaNaoExpande", func(t *testing.T) {
		e := &models.ScheduleException{
			StartDate:         date(2026, 3, 2),
			EndDate:           date(2026, 3, 2),
			RecurrencePattern: models.RecurrenceNone,
		}
		if children := ExpandRecurrence(e); children != nil {
			t.Fatalf("expected nil, got %d children", len(children))
		}
	})

	t.Run("SemanalGeraUmaFilhaPorSemana", func(t *testing.T) {
		re := date(2026, 3, 30)
		e := &models.ScheduleException{
			ProviderID:        7,
			StartDate:         date(2026, 3, 2), // segunda
			EndDate:           date(2026, 3, 2),
			StartTime:         "14:00",
			EndTime:           "18:00",
			Type:              "personal",
			RecurrencePattern: models.RecurrenceWeekly,
			RecurrenceEnd:     &re,
		}

		children := ExpandRecurrence(e)
		// 09, 16, 23, 30 de março (a mãe cobre o dia 02)
		if len(children) != 4 {
			t.Fatalf("expected 4 children, got %d", len(children))
		}
		for i, c := range children {
			want := date(2026, 3, 2).AddDate(0, 0, 7*(i+1))
			if !c.StartDate.Equal(want) {
				t.Fatalf("child %d em %s, esperava %s", i, c.StartDate, want)
			}
			if c.RecurrencePattern != models.RecurrenceNone {
				t.Fatalf("filha deve sair com pattern none, got %q", c.RecurrencePattern)
			}
			if c.StartTime != "14:00" || c.EndTime != "18:00" {
				t.Fatalf("filha deve herdar os horários")
			}
			if c.ProviderID != 7 {
				t.Fatalf("filha deve herdar o prestador")
			}
		}
	})

	t.Run("IntervaloDeVariosDiasPreservaAExtensao", func(t *testing.T) {
		re := date(2026, 4, 15)
		e := &models.ScheduleException{
			StartDate:         date(2026, 3, 2),
			EndDate:           date(2026, 3, 4), // 3 dias
			RecurrencePattern: models.RecurrenceMonthly,
			RecurrenceEnd:     &re,
		}

		children := ExpandRecurrence(e)
		if len(children) != 1 {
			t.Fatalf("expected 1 child, got %d", len(children))
		}
		if !children[0].StartDate.Equal(date(2026, 4, 2)) ||
			!children[0].EndDate.Equal(date(2026, 4, 4)) {
			t.Fatalf("extensão perdida: %s .. %s", children[0].StartDate, children[0].EndDate)
		}
	})

	t.Run("DiariaParaNoFim", func(t *testing.T) {
		re := date(2026, 3, 5)
		e := &models.ScheduleException{
			StartDate:         date(2026, 3, 2),
			EndDate:           date(2026, 3, 2),
			RecurrencePattern: models.RecurrenceDaily,
			RecurrenceEnd:     &re,
		}

		children := ExpandRecurrence(e)
		if len(children) != 3 {
			t.Fatalf("expected 3 children (03, 04, 05), got %d", len(children))
		}
		last := children[len(children)-1]
		if last.StartDate.After(re) {
			t.Fatalf("filha além do fim da recorrência: %s", last.StartDate)
		}
	})
}
