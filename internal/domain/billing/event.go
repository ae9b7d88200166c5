package billing

import "time"

// Tipos de evento emitidos para o colaborador de notificação. O canal
// de entrega (e-mail, WhatsApp, push) não é assunto deste núcleo.
const (
	EventBatchCreated         = "batch_created"
	EventPaymentDue           = "payment_due"
	EventPaymentLate          = "payment_late"
	EventEarlyPaymentDiscount = "early_payment_discount"
)

// Event é o payload abstrato entregue ao colaborador de notificação.
type Event struct {
	Type string `json:"type"`

	RuleID       uint `json:"rule_id"`
	BatchID      uint `json:"batch_id"`
	HealthPlanID uint `json:"health_plan_id"`

	Amount  float64   `json:"amount"`
	DueDate time.Time `json:"due_date"`

	DaysUntilDue *int `json:"days_until_due,omitempty"`

	PaymentLink string `json:"payment_link,omitempty"`
}

// Notifier é o colaborador de notificação. A implementação deve ser
// best-effort: falha de despacho nunca desfaz o faturamento.
type Notifier interface {
	Dispatch(ev Event)
}
