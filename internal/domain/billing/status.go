package billing

import "github.com/ConectaSaudeBR/rede-scheduler/internal/httperr"

// ===============================
// Billing Batch Status
// ===============================

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusLate    Status = "late"
)

// ===============================
// Validations
// ===============================

// CanRegisterPayment: só lotes em aberto (pendente ou atrasado) recebem
// pagamento. Lote pago é imutável.
func CanRegisterPayment(current Status) error {
	if current != StatusPending && current != StatusLate {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanMarkLate: apenas lotes pendentes viram atrasados.
func CanMarkLate(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
