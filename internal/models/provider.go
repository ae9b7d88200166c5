package models

import "time"

// Tipos de prestador da rede. O discriminador substitui os antigos
// switches por string espalhados: todo acesso passa pelos métodos abaixo.
const (
	ProviderProfessional = "professional"
	ProviderClinic       = "clinic"
)

type Provider struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Kind string `gorm:"size:20;not null" json:"kind"` // professional | clinic

	Name     string `gorm:"size:100;not null" json:"name"`
	Slug     string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone    string `gorm:"size:20" json:"phone"`
	Address  string `gorm:"size:255" json:"address"`
	Timezone string `gorm:"size:50" json:"timezone"`

	// Credenciamento
	RegistrationCode string `gorm:"size:50" json:"registration_code"` // CRM / CNES
	AvatarURL        string `gorm:"size:255" json:"avatar_url"`

	MinAdvanceMinutes int  `gorm:"default:120" json:"min_advance_minutes"`
	Active            bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Provider) IsClinic() bool {
	return p.Kind == ProviderClinic
}

func (p *Provider) IsProfessional() bool {
	return p.Kind == ProviderProfessional
}
