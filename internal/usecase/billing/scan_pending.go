package billing

import (
	"context"
	"time"

	domain "github.com/ConectaSaudeBR/rede-scheduler/internal/domain/billing"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/timezone"
)

// ======================================================
// USE CASE
// ======================================================

// ScanPending percorre os lotes em aberto de uma regra e emite os
// avisos de calendário: vencimento se aproximando, vencido, janela de
// desconto por antecipação. Aproximação e desconto disparam no dia
// exato; atraso dispara enquanto o lote seguir pendente. A deduplicação
// intradiária fica com o canal de entrega.
type ScanPending struct {
	repo     domain.Repository
	notifier domain.Notifier
}

func NewScanPending(repo domain.Repository, notifier domain.Notifier) *ScanPending {
	return &ScanPending{repo: repo, notifier: notifier}
}

func (uc *ScanPending) Execute(
	ctx context.Context,
	rule models.BillingRule,
	now time.Time,
) error {

	batches, err := uc.repo.ListPendingBatches(ctx, rule.ID)
	if err != nil {
		return err
	}

	for i := range batches {
		uc.scanBatch(rule, &batches[i], now)
	}

	return nil
}

func (uc *ScanPending) scanBatch(
	rule models.BillingRule,
	batch *models.BillingBatch,
	now time.Time,
) {
	daysUntil := timezone.DaysBetween(now, batch.DueDate, timezone.DefaultTimezone)

	if rule.NotifyBeforeDueDate &&
		rule.NotifyDaysBefore > 0 &&
		daysUntil == rule.NotifyDaysBefore {
		uc.emit(domain.EventPaymentDue, rule, batch, &daysUntil)
	}

	if rule.NotifyOnLatePayment && daysUntil < 0 {
		uc.emit(domain.EventPaymentLate, rule, batch, &daysUntil)
	}

	if rule.DiscountIfPaidUntilDays > 0 &&
		daysUntil == rule.DiscountIfPaidUntilDays {
		uc.emit(domain.EventEarlyPaymentDiscount, rule, batch, &daysUntil)
	}
}

func (uc *ScanPending) emit(
	eventType string,
	rule models.BillingRule,
	batch *models.BillingBatch,
	daysUntil *int,
) {
	d := *daysUntil
	uc.notifier.Dispatch(domain.Event{
		Type:         eventType,
		RuleID:       rule.ID,
		BatchID:      batch.ID,
		HealthPlanID: rule.HealthPlanID,
		Amount:       batch.TotalAmount,
		DueDate:      batch.DueDate,
		DaysUntilDue: &d,
		PaymentLink:  batch.PaymentLink,
	})
}
