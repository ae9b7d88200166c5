package billing

import (
	"time"

	"github.com/ConectaSaudeBR/rede-scheduler/internal/httperr"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
)

// ValidTypes enumera os tipos de regra aceitos.
var ValidTypes = map[string]bool{
	models.BillingTypeMonthly:        true,
	models.BillingTypeWeekly:         true,
	models.BillingTypeBatch:          true,
	models.BillingTypePerAppointment: true,
}

func ValidateRule(r *models.BillingRule) error {
	if !ValidTypes[r.BillingType] {
		return httperr.ErrBusiness("invalid_billing_type")
	}
	switch r.BillingType {
	case models.BillingTypeMonthly:
		if r.BillingDay < 1 || r.BillingDay > 28 {
			return httperr.ErrBusiness("invalid_billing_day")
		}
	case models.BillingTypeWeekly:
		// domingo=0..sábado=6 (convenção única do sistema)
		if r.BillingDay < 0 || r.BillingDay > 6 {
			return httperr.ErrBusiness("invalid_billing_day")
		}
	case models.BillingTypeBatch:
		if r.BatchAmountThreshold <= 0 && r.BatchCountThreshold <= 0 {
			return httperr.ErrBusiness("batch_threshold_required")
		}
	}
	return nil
}

// TriggersOn decide se uma regra periódica dispara em now. Regras batch
// e per_appointment não dependem do calendário.
func TriggersOn(r *models.BillingRule, now time.Time) bool {
	switch r.BillingType {
	case models.BillingTypeMonthly:
		return now.Day() == r.BillingDay
	case models.BillingTypeWeekly:
		return int(now.Weekday()) == r.BillingDay
	default:
		return true
	}
}

// ShouldBillBatch aplica os gatilhos do tipo batch: valor OU quantidade,
// o que vier primeiro. Gatilho zerado é ignorado.
func ShouldBillBatch(r *models.BillingRule, totalAmount float64, count int) bool {
	if r.BatchAmountThreshold > 0 && totalAmount >= r.BatchAmountThreshold {
		return true
	}
	if r.BatchCountThreshold > 0 && count >= r.BatchCountThreshold {
		return true
	}
	return false
}

// DueDate calcula o vencimento a partir da geração. Regra sem prazo
// usa o default do sistema.
func DueDate(r *models.BillingRule, now time.Time, defaultTermDays int) time.Time {
	term := r.PaymentTermDays
	if term <= 0 {
		term = defaultTermDays
	}
	return now.AddDate(0, 0, term)
}

// PeriodFor resolve o período coberto por um lote periódico: do dia
// seguinte ao fim do último lote até now; sem lote anterior, recua um
// mês (monthly) ou uma semana (weekly).
func PeriodFor(r *models.BillingRule, last *models.BillingBatch, now time.Time) (time.Time, time.Time) {
	if last != nil {
		return last.PeriodEnd.AddDate(0, 0, 1), now
	}
	if r.BillingType == models.BillingTypeWeekly {
		return now.AddDate(0, 0, -7), now
	}
	return now.AddDate(0, -1, 0), now
}
