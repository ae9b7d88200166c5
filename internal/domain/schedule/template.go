package schedule

import (
	"github.com/ConectaSaudeBR/rede-scheduler/internal/httperr"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
)

// ValidateTemplate checa uma linha da grade semanal antes de gravar.
// Invariante: a pausa, quando presente, fica estritamente dentro de
// [start, end).
func ValidateTemplate(t *models.ScheduleTemplate) error {
	if !Weekday(t.Weekday).Valid() {
		return httperr.ErrBusiness("invalid_weekday")
	}

	if !t.Available {
		return nil
	}

	start, err := ParseHM(t.StartTime)
	if err != nil {
		return httperr.ErrBusiness("invalid_time_range")
	}
	end, err := ParseHM(t.EndTime)
	if err != nil {
		return httperr.ErrBusiness("invalid_time_range")
	}
	if end <= start {
		return httperr.ErrBusiness("invalid_time_range")
	}

	if t.BreakStart != "" || t.BreakEnd != "" {
		bs, err := ParseHM(t.BreakStart)
		if err != nil {
			return httperr.ErrBusiness("invalid_break_window")
		}
		be, err := ParseHM(t.BreakEnd)
		if err != nil {
			return httperr.ErrBusiness("invalid_break_window")
		}
		if be <= bs || bs <= start || be >= end {
			return httperr.ErrBusiness("invalid_break_window")
		}
	}

	return nil
}

// Window monta a janela do dia a partir da linha da grade. Linha
// inválida vira janela indisponível (mesmo efeito de não ter grade).
func Window(t *models.ScheduleTemplate) DayWindow {
	if t == nil || !t.Available {
		return DayWindow{}
	}

	start, err1 := ParseHM(t.StartTime)
	end, err2 := ParseHM(t.EndTime)
	if err1 != nil || err2 != nil || end <= start {
		return DayWindow{}
	}

	w := DayWindow{
		Start:     start,
		End:       end,
		Location:  t.Location,
		Available: true,
	}

	if t.BreakStart != "" && t.BreakEnd != "" {
		bs, err1 := ParseHM(t.BreakStart)
		be, err2 := ParseHM(t.BreakEnd)
		if err1 == nil && err2 == nil && be > bs {
			w.HasBreak = true
			w.BreakStart = bs
			w.BreakEnd = be
		}
	}

	return w
}
