package models

import "time"

// Procedimento do catálogo do prestador. A duração alimenta a agenda
// e o valor vira o montante faturável do atendimento.
type Procedure struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `json:"provider_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	DurationMin int     `json:"duration_min"`
	Amount      float64 `gorm:"type:numeric(12,2)" json:"amount"`
	Active      bool    `gorm:"default:true" json:"active"`

	Category string `gorm:"size:50" json:"category"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
