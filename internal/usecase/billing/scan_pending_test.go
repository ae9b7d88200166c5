package billing

import (
	"context"
	"testing"
	"time"

	domain "github.com/ConectaSaudeBR/rede-scheduler/internal/domain/billing"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
)

func pendingBatch(ruleID uint, due time.Time) *models.BillingBatch {
	return &models.BillingBatch{
		BillingRuleID: ruleID,
		HealthPlanID:  10,
		TotalAmount:   500,
		Status:        "pending",
		DueDate:       due,
	}
}

func TestScanPending(t *testing.T) {
	ctx := context.Background()
	now := at(2026, 8, 15)

	rule := models.BillingRule{
		ID:                  1,
		HealthPlanID:        10,
		BillingType:         models.BillingTypeMonthly,
		NotifyBeforeDueDate: true,
		NotifyDaysBefore:    3,
		NotifyOnLatePayment: true,
	}

	t.Run("AvisoNoDiaExato", func(t *testing.T) {
		repo := newFakeBillingRepo()
		repo.batches = append(repo.batches, pendingBatch(1, at(2026, 8, 18)))

		notifier := &fakeNotifier{}
		uc := NewScanPending(repo, notifier)

		if err := uc.Execute(ctx, rule, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(notifier.events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(notifier.events))
		}
		ev := notifier.events[0]
		if ev.Type != domain.EventPaymentDue {
			t.Fatalf("tipo errado: %s", ev.Type)
		}
		if ev.DaysUntilDue == nil || *ev.DaysUntilDue != 3 {
			t.Fatalf("days_until_due errado: %+v", ev.DaysUntilDue)
		}
	})

	t.Run("ForaDoDiaExatoNaoAvisa", func(t *testing.T) {
		repo := newFakeBillingRepo()
		// vence em 2 dias; o aviso é só a 3 dias do vencimento
		repo.batches = append(repo.batches, pendingBatch(1, at(2026, 8, 17)))

		notifier := &fakeNotifier{}
		uc := NewScanPending(repo, notifier)

		if err := uc.Execute(ctx, rule, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(notifier.events) != 0 {
			t.Fatalf("não deveria avisar: %+v", notifier.events)
		}
	})

	t.Run("VencidoAvisaAtraso", func(t *testing.T) {
		repo := newFakeBillingRepo()
		repo.batches = append(repo.batches, pendingBatch(1, at(2026, 8, 10)))

		notifier := &fakeNotifier{}
		uc := NewScanPending(repo, notifier)

		if err := uc.Execute(ctx, rule, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(notifier.events) != 1 || notifier.events[0].Type != domain.EventPaymentLate {
			t.Fatalf("esperava payment_late: %+v", notifier.events)
		}
	})

	t.Run("JanelaDeDesconto", func(t *testing.T) {
		discounted := rule
		discounted.NotifyBeforeDueDate = false
		discounted.DiscountIfPaidUntilDays = 5
		discounted.DiscountPercent = 2.5

		repo := newFakeBillingRepo()
		repo.batches = append(repo.batches, pendingBatch(1, at(2026, 8, 20)))

		notifier := &fakeNotifier{}
		uc := NewScanPending(repo, notifier)

		if err := uc.Execute(ctx, discounted, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(notifier.events) != 1 || notifier.events[0].Type != domain.EventEarlyPaymentDiscount {
			t.Fatalf("esperava early_payment_discount: %+v", notifier.events)
		}
	})

	t.Run("LotePagoNaoEntraNaVarredura", func(t *testing.T) {
		repo := newFakeBillingRepo()
		paid := pendingBatch(1, at(2026, 8, 10))
		paid.Status = "paid"
		repo.batches = append(repo.batches, paid)

		notifier := &fakeNotifier{}
		uc := NewScanPending(repo, notifier)

		if err := uc.Execute(ctx, rule, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(notifier.events) != 0 {
			t.Fatalf("lote pago gerou aviso: %+v", notifier.events)
		}
	})
}
