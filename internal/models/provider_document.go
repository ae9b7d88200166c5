package models

import "time"

// Documento de credenciamento (diploma, alvará, registro) guardado no S3.
type ProviderDocument struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"index" json:"provider_id"`

	Type    string `gorm:"size:50" json:"type"`
	FileURL string `gorm:"size:255;not null" json:"file_url"`

	CreatedAt time.Time `json:"created_at"`
}
