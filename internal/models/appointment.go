package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProviderID uint     `json:"provider_id"`
	Provider   Provider `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"provider"`

	PatientID uint    `json:"patient_id"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"patient"`

	ProcedureID uint      `json:"procedure_id"`
	Procedure   Procedure `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"procedure"`

	// Plano de saúde faturável; nil = atendimento particular
	HealthPlanID *uint       `json:"health_plan_id"`
	HealthPlan   *HealthPlan `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"health_plan"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// Valor copiado do procedimento na criação; é o montante faturado
	Amount float64 `gorm:"type:numeric(12,2)" json:"amount"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
