package models

import "time"

type HealthPlan struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	CNPJ  string `gorm:"size:20;uniqueIndex" json:"cnpj"`
	Email string `gorm:"size:100" json:"email"`
	Phone string `gorm:"size:20" json:"phone"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
