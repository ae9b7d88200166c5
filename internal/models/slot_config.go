package models

import "time"

// Parâmetros escalares de agenda por prestador. Campos zerados caem
// nos defaults do config na hora do cálculo.
type SlotConfig struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"uniqueIndex" json:"provider_id"`

	SlotDurationMin int `json:"slot_duration_min"`
	BufferMin       int `json:"buffer_min"`

	MaxDailyAppointments *int `json:"max_daily_appointments"` // nil = sem teto

	AdvanceBookingDays int `json:"advance_booking_days"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
