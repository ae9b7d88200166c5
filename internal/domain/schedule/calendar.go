package schedule

import "time"

// Teto duro da janela do calendário. O chamador pode configurar menos,
// nunca mais.
const MaxCalendarDays = 90

// DayAvailability é a decisão grosseira dia-sim/dia-não usada pelo
// calendário da interface. Deliberadamente NÃO garante consistência com
// a enumeração de slots: um dia marcado disponível pode não ter slot
// livre ao descer no detalhe.
type DayAvailability struct {
	Date      string `json:"date"` // "2006-01-02"
	Weekday   int    `json:"weekday"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// DayInput é a avaliação de um único dia do calendário, sem enumerar
// slots.
type DayInput struct {
	Window           DayWindow
	FullDayException bool
	BookedCount      int
	MaxDaily         int
	LocationFilter   string
}

// EvaluateDay aplica apenas as checagens de nível de dia: grade
// presente, exceção de dia inteiro, local e teto de atendimentos.
func EvaluateDay(in DayInput) (bool, string) {
	if !in.Window.Available || in.Window.End <= in.Window.Start {
		return false, ReasonNotInSchedule
	}
	if in.FullDayException {
		return false, ReasonException
	}
	if in.LocationFilter != "" && in.Window.Location != "" && in.Window.Location != in.LocationFilter {
		return false, ReasonLocation
	}
	if in.MaxDaily > 0 && in.BookedCount >= in.MaxDaily {
		return false, ReasonMaxAppointment
	}
	return true, ""
}

// ClampCalendarRange limita [start, end] (inclusivo) a maxDays dias,
// respeitando o teto global.
func ClampCalendarRange(start, end time.Time, maxDays int) (time.Time, time.Time) {
	if maxDays <= 0 || maxDays > MaxCalendarDays {
		maxDays = MaxCalendarDays
	}
	if end.Before(start) {
		return start, start
	}
	limit := start.AddDate(0, 0, maxDays-1)
	if end.After(limit) {
		end = limit
	}
	return start, end
}
