package models

import "time"

// Grade semanal do prestador: uma linha por (prestador, dia da semana).
// Weekday segue time.Weekday: domingo=0 .. sábado=6.
// A grade é substituída por inteiro na atualização, nunca editada parcialmente.
type ScheduleTemplate struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"index:idx_template_provider_weekday" json:"provider_id"`

	Weekday int `gorm:"index:idx_template_provider_weekday" json:"weekday"`

	StartTime string `gorm:"size:5" json:"start_time"` // "08:00"
	EndTime   string `gorm:"size:5" json:"end_time"`

	// Pausa (almoço); quando presente, fica estritamente dentro de [start, end)
	BreakStart string `gorm:"size:5" json:"break_start"`
	BreakEnd   string `gorm:"size:5" json:"break_end"`

	Location  string `gorm:"size:100" json:"location"`
	Available bool   `json:"available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
