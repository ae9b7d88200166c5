package schedule

import (
	"testing"

	"github.com/ConectaSaudeBR/rede-scheduler/internal/httperr"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
)

func TestValidateTemplate(t *testing.T) {
	base := func() *models.ScheduleTemplate {
		return &models.ScheduleTemplate{
			Weekday:   1,
			Available: true,
			StartTime: "08:00",
			EndTime:   "18:00",
		}
	}

	t.Run("LinhaValida", func(t *testing.T) {
		if err := ValidateTemplate(base()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("DiaIndisponivelNaoExigeHorarios", func(t *testing.T) {
		tpl := &models.ScheduleTemplate{Weekday: 0, Available: false}
		if err := ValidateTemplate(tpl); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("WeekdayForaDaFaixa", func(t *testing.T) {
		tpl := base()
		tpl.Weekday = 7
		if err := ValidateTemplate(tpl); !httperr.IsBusiness(err, "invalid_weekday") {
			t.Fatalf("expected invalid_weekday, got %v", err)
		}
	})

	t.Run("HorariosInvertidos", func(t *testing.T) {
		tpl := base()
		tpl.StartTime = "18:00"
		tpl.EndTime = "08:00"
		if err := ValidateTemplate(tpl); !httperr.IsBusiness(err, "invalid_time_range") {
			t.Fatalf("expected invalid_time_range, got %v", err)
		}
	})

	t.Run("PausaForaDaJanela", func(t *testing.T) {
		tpl := base()
		tpl.BreakStart = "07:00"
		tpl.BreakEnd = "07:30"
		if err := ValidateTemplate(tpl); !httperr.IsBusiness(err, "invalid_break_window") {
			t.Fatalf("expected invalid_break_window, got %v", err)
		}
	})

	t.Run("PausaEncostadaNasBordas", func(t *testing.T) {
		// a pausa precisa ficar estritamente dentro da janela
		tpl := base()
		tpl.BreakStart = "08:00"
		tpl.BreakEnd = "09:00"
		if err := ValidateTemplate(tpl); !httperr.IsBusiness(err, "invalid_break_window") {
			t.Fatalf("expected invalid_break_window, got %v", err)
		}
	})
}

func TestWindow(t *testing.T) {

	t.Run("Nil", func(t *testing.T) {
		if w := Window(nil); w.Available {
			t.Fatal("nil deveria virar janela indisponível")
		}
	})

	t.Run("LinhaCompleta", func(t *testing.T) {
		w := Window(&models.ScheduleTemplate{
			Available:  true,
			StartTime:  "08:00",
			EndTime:    "17:00",
			BreakStart: "12:00",
			BreakEnd:   "13:00",
			Location:   "unidade-centro",
		})
		if !w.Available || !w.HasBreak {
			t.Fatalf("janela incompleta: %+v", w)
		}
		if w.Start != mins("08:00") || w.End != mins("17:00") {
			t.Fatalf("janela errada: %+v", w)
		}
		if w.BreakStart != mins("12:00") || w.BreakEnd != mins("13:00") {
			t.Fatalf("pausa errada: %+v", w)
		}
		if w.Location != "unidade-centro" {
			t.Fatalf("local perdido: %+v", w)
		}
	})

	t.Run("HorarioQuebradoViraIndisponivel", func(t *testing.T) {
		w := Window(&models.ScheduleTemplate{
			Available: true,
			StartTime: "zz:zz",
			EndTime:   "17:00",
		})
		if w.Available {
			t.Fatal("linha inválida deveria virar janela indisponível")
		}
	})
}
