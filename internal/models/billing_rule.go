package models

import "time"

// Tipos de faturamento suportados por regra.
const (
	BillingTypeMonthly        = "monthly"
	BillingTypeWeekly         = "weekly"
	BillingTypeBatch          = "batch"
	BillingTypePerAppointment = "per_appointment"
)

// Regra de faturamento por plano de saúde (opcionalmente por contrato).
// BillingDay: dia do mês para monthly; dia da semana (domingo=0..sábado=6)
// para weekly.
type BillingRule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	HealthPlanID uint       `gorm:"index" json:"health_plan_id"`
	HealthPlan   HealthPlan `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"health_plan"`

	ContractCode string `gorm:"size:50" json:"contract_code"`

	BillingType string `gorm:"size:20;not null" json:"billing_type"`
	BillingDay  int    `json:"billing_day"`

	// Lote abaixo deste valor não é gerado (abandono silencioso)
	MinimumBillingAmount float64 `gorm:"type:numeric(12,2)" json:"minimum_billing_amount"`

	// Gatilhos do tipo batch; zero = gatilho desativado
	BatchAmountThreshold float64 `gorm:"type:numeric(12,2)" json:"batch_amount_threshold"`
	BatchCountThreshold  int     `json:"batch_count_threshold"`

	// Vencimento: dias corridos a partir da geração
	PaymentTermDays int `json:"payment_term_days"`

	// Notificações
	NotifyOnGeneration  bool `json:"notify_on_generation"`
	NotifyBeforeDueDate bool `json:"notify_before_due_date"`
	NotifyDaysBefore    int  `json:"notify_days_before"`
	NotifyOnLatePayment bool `json:"notify_on_late_payment"`

	// Desconto por antecipação; zero = sem janela de desconto
	DiscountIfPaidUntilDays int     `json:"discount_if_paid_until_days"`
	DiscountPercent         float64 `gorm:"type:numeric(5,2)" json:"discount_percent"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
