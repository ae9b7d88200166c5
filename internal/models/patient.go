package models

import "time"

// Paciente simples, sem login, vinculado ao prestador
type Patient struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `json:"provider_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	HealthPlanID *uint `json:"health_plan_id"` // nil = particular

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
