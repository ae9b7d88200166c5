package models

import "time"

// Padrões de recorrência de exceção de agenda.
const (
	RecurrenceNone    = "none"
	RecurrenceDaily   = "daily"
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
)

// Exceção de agenda: férias, afastamento, bloqueio pontual.
// StartTime/EndTime vazios = dia inteiro.
// Recorrência gera exceções filhas com pattern "none" apontando para a mãe.
type ScheduleException struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"index" json:"provider_id"`

	StartDate time.Time `json:"start_date"` // inclusivo
	EndDate   time.Time `json:"end_date"`   // inclusivo; >= StartDate

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	Type string `gorm:"size:20;default:'other'" json:"type"` // vacation | sick | personal | other

	RecurrencePattern string     `gorm:"size:20;default:'none'" json:"recurrence_pattern"`
	RecurrenceEnd     *time.Time `json:"recurrence_end"`
	ParentID          *uint      `json:"parent_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullDay indica se a exceção bloqueia o dia inteiro.
func (e *ScheduleException) FullDay() bool {
	return e.StartTime == ""
}
