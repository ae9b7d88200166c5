package schedule

import (
	"time"

	"github.com/ConectaSaudeBR/rede-scheduler/internal/httperr"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
)

// ValidateException checa a exceção no momento da criação. A checagem
// contra agendamentos ativos fica no use case (precisa de repositório).
func ValidateException(e *models.ScheduleException) error {
	if e.EndDate.Before(e.StartDate) {
		return httperr.ErrBusiness("invalid_date_range")
	}

	// parcial: os dois horários vêm juntos e em ordem
	if e.StartTime != "" || e.EndTime != "" {
		start, err := ParseHM(e.StartTime)
		if err != nil {
			return httperr.ErrBusiness("invalid_time_range")
		}
		end, err := ParseHM(e.EndTime)
		if err != nil {
			return httperr.ErrBusiness("invalid_time_range")
		}
		if end <= start {
			return httperr.ErrBusiness("invalid_time_range")
		}
	}

	switch e.RecurrencePattern {
	case "", models.RecurrenceNone:
	case models.RecurrenceDaily, models.RecurrenceWeekly, models.RecurrenceMonthly:
		if e.RecurrenceEnd == nil {
			return httperr.ErrBusiness("recurrence_end_required")
		}
		if e.RecurrenceEnd.Before(e.StartDate) {
			return httperr.ErrBusiness("invalid_recurrence_end")
		}
	default:
		return httperr.ErrBusiness("invalid_recurrence_pattern")
	}

	return nil
}

// ExpandRecurrence gera as exceções filhas de uma exceção recorrente.
// Cada filha sai com pattern "none"; o ParentID é preenchido pela
// persistência depois que a mãe ganha ID, na mesma transação. A mãe em
// si já cobre a primeira ocorrência.
func ExpandRecurrence(parent *models.ScheduleException) []models.ScheduleException {
	if parent.RecurrencePattern == "" ||
		parent.RecurrencePattern == models.RecurrenceNone ||
		parent.RecurrenceEnd == nil {
		return nil
	}

	step := func(t time.Time) time.Time {
		switch parent.RecurrencePattern {
		case models.RecurrenceDaily:
			return t.AddDate(0, 0, 1)
		case models.RecurrenceWeekly:
			return t.AddDate(0, 0, 7)
		default: // monthly
			return t.AddDate(0, 1, 0)
		}
	}

	span := parent.EndDate.Sub(parent.StartDate)

	var children []models.ScheduleException
	for start := step(parent.StartDate); !start.After(*parent.RecurrenceEnd); start = step(start) {
		children = append(children, models.ScheduleException{
			ProviderID:        parent.ProviderID,
			StartDate:         start,
			EndDate:           start.Add(span),
			StartTime:         parent.StartTime,
			EndTime:           parent.EndTime,
			Type:              parent.Type,
			RecurrencePattern: models.RecurrenceNone,
		})
	}

	return children
}
