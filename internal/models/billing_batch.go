package models

import "time"

type BillingBatch struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Referência estável para sistemas externos (boleto, link de pagamento)
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	HealthPlanID uint `gorm:"index" json:"health_plan_id"`

	BillingRuleID uint        `gorm:"index" json:"billing_rule_id"`
	BillingRule   BillingRule `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"billing_rule"`

	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	TotalAmount float64 `gorm:"type:numeric(12,2)" json:"total_amount"`

	Status  string    `gorm:"size:20;default:'pending'" json:"status"` // pending | paid | late
	DueDate time.Time `json:"due_date"`

	PaymentLink string     `gorm:"size:255" json:"payment_link"`
	PaidAt      *time.Time `json:"paid_at"`

	Items []BillingBatchItem `json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Item de lote. O índice único em appointment_id é a garantia externa
// de que um atendimento nunca entra em dois lotes, mesmo com avaliações
// concorrentes da mesma regra.
type BillingBatchItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BillingBatchID uint `gorm:"index" json:"billing_batch_id"`

	AppointmentID uint        `gorm:"uniqueIndex" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"appointment"`

	// Valor copiado tal e qual do atendimento, sem recálculo
	Amount float64 `gorm:"type:numeric(12,2)" json:"amount"`

	CreatedAt time.Time `json:"created_at"`
}
