package models

import "time"

// Registro dos eventos de notificação emitidos pelo faturamento.
// A entrega em si (e-mail, WhatsApp, push) é responsabilidade de quem
// consome esta tabela; aqui só fica o evento.
type NotificationLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Type string `gorm:"size:50;not null" json:"type"`

	BillingRuleID  uint `json:"billing_rule_id"`
	BillingBatchID uint `json:"billing_batch_id"`
	HealthPlanID   uint `json:"health_plan_id"`

	Payload string `gorm:"type:text" json:"payload"`

	CreatedAt time.Time `json:"created_at"`
}
