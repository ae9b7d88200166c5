package billing

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ConectaSaudeBR/rede-scheduler/internal/config"
	domain "github.com/ConectaSaudeBR/rede-scheduler/internal/domain/billing"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/payments"
)

// ======================================================
// USE CASE
// ======================================================

// EvaluateRule examina uma regra e, se as condições valem, materializa
// lote(s). Regras periódicas e batch geram no máximo um lote por
// execução; per_appointment gera um lote por atendimento não faturado.
type EvaluateRule struct {
	repo     domain.Repository
	notifier domain.Notifier
	links    payments.LinkGenerator // opcional; nil = sem link de pagamento
	cfg      *config.Config
}

func NewEvaluateRule(
	repo domain.Repository,
	notifier domain.Notifier,
	links payments.LinkGenerator,
	cfg *config.Config,
) *EvaluateRule {
	return &EvaluateRule{
		repo:     repo,
		notifier: notifier,
		links:    links,
		cfg:      cfg,
	}
}

func (uc *EvaluateRule) Execute(
	ctx context.Context,
	rule models.BillingRule,
	now time.Time,
) ([]*models.BillingBatch, error) {

	// regra periódica fora do dia de corte: nada a fazer
	if !domain.TriggersOn(&rule, now) {
		return nil, nil
	}

	// conjunto "não faturado" vem pronto da persistência (anti-join
	// contra os itens de lote); não existe flag no atendimento
	unbilled, err := uc.repo.UnbilledEvents(ctx, rule.HealthPlanID)
	if err != nil {
		return nil, err
	}
	if len(unbilled) == 0 {
		return nil, nil
	}

	switch rule.BillingType {
	case models.BillingTypePerAppointment:
		return uc.perAppointment(ctx, rule, unbilled, now)

	case models.BillingTypeBatch:
		return uc.thresholdBatch(ctx, rule, unbilled, now)

	default: // monthly | weekly
		return uc.periodic(ctx, rule, unbilled, now)
	}
}

// --------------------------------------------------
// per_appointment: um lote por atendimento
// --------------------------------------------------

func (uc *EvaluateRule) perAppointment(
	ctx context.Context,
	rule models.BillingRule,
	unbilled []models.Appointment,
	now time.Time,
) ([]*models.BillingBatch, error) {

	var created []*models.BillingBatch

	for i := range unbilled {
		ev := unbilled[i]

		batch, err := uc.materialize(
			ctx,
			rule,
			[]models.Appointment{ev},
			ev.StartTime,
			ev.StartTime,
			now,
		)
		if err != nil {
			return created, err
		}
		if batch != nil {
			created = append(created, batch)
		}
	}

	return created, nil
}

// --------------------------------------------------
// batch: gatilho por valor OU quantidade acumulada
// --------------------------------------------------

func (uc *EvaluateRule) thresholdBatch(
	ctx context.Context,
	rule models.BillingRule,
	unbilled []models.Appointment,
	now time.Time,
) ([]*models.BillingBatch, error) {

	total := 0.0
	for _, ev := range unbilled {
		total += ev.Amount
	}

	if !domain.ShouldBillBatch(&rule, total, len(unbilled)) {
		return nil, nil
	}

	// período = do atendimento mais antigo ao mais recente
	periodStart := unbilled[0].StartTime
	periodEnd := unbilled[0].StartTime
	for _, ev := range unbilled[1:] {
		if ev.StartTime.Before(periodStart) {
			periodStart = ev.StartTime
		}
		if ev.StartTime.After(periodEnd) {
			periodEnd = ev.StartTime
		}
	}

	batch, err := uc.materialize(ctx, rule, unbilled, periodStart, periodEnd, now)
	if err != nil || batch == nil {
		return nil, err
	}
	return []*models.BillingBatch{batch}, nil
}

// --------------------------------------------------
// monthly / weekly: período desde o último lote
// --------------------------------------------------

func (uc *EvaluateRule) periodic(
	ctx context.Context,
	rule models.BillingRule,
	unbilled []models.Appointment,
	now time.Time,
) ([]*models.BillingBatch, error) {

	last, err := uc.repo.LastBatch(ctx, rule.ID)
	if err != nil {
		return nil, err
	}

	periodStart, periodEnd := domain.PeriodFor(&rule, last, now)

	var events []models.Appointment
	for _, ev := range unbilled {
		if ev.StartTime.Before(periodStart) || ev.StartTime.After(periodEnd) {
			continue
		}
		events = append(events, ev)
	}
	if len(events) == 0 {
		return nil, nil
	}

	batch, err := uc.materialize(ctx, rule, events, periodStart, periodEnd, now)
	if err != nil || batch == nil {
		return nil, err
	}
	return []*models.BillingBatch{batch}, nil
}

// --------------------------------------------------
// materialização
// --------------------------------------------------

// materialize soma, aplica o piso da regra e grava cabeçalho + itens
// atomicamente. Soma abaixo do piso: abandono silencioso — sem lote e
// sem erro, por política.
func (uc *EvaluateRule) materialize(
	ctx context.Context,
	rule models.BillingRule,
	events []models.Appointment,
	periodStart time.Time,
	periodEnd time.Time,
	now time.Time,
) (*models.BillingBatch, error) {

	total := 0.0
	for _, ev := range events {
		total += ev.Amount
	}

	if rule.MinimumBillingAmount > 0 && total < rule.MinimumBillingAmount {
		return nil, nil
	}

	batch := &models.BillingBatch{
		Reference:     uuid.NewString(),
		HealthPlanID:  rule.HealthPlanID,
		BillingRuleID: rule.ID,
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		TotalAmount:   total,
		Status:        string(domain.InitialStatus()),
		DueDate:       domain.DueDate(&rule, now, uc.cfg.DefaultPaymentTermDays),
	}

	items := make([]models.BillingBatchItem, 0, len(events))
	for _, ev := range events {
		items = append(items, models.BillingBatchItem{
			AppointmentID: ev.ID,
			// valor copiado tal e qual, sem recálculo
			Amount: ev.Amount,
		})
	}

	if err := uc.repo.CreateBatch(ctx, batch, items); err != nil {
		return nil, err
	}

	uc.notifyCreated(ctx, rule, batch)

	return batch, nil
}

// notifyCreated é best-effort: falha aqui nunca desfaz o lote.
func (uc *EvaluateRule) notifyCreated(
	ctx context.Context,
	rule models.BillingRule,
	batch *models.BillingBatch,
) {
	if !rule.NotifyOnGeneration {
		return
	}

	link := ""
	if uc.links != nil {
		var err error
		link, err = uc.links.LinkFor(ctx, batch, rule.HealthPlan.Name)
		if err != nil {
			log.Printf("payment link error rule=%d batch=%d: %v", rule.ID, batch.ID, err)
		}
	}

	uc.notifier.Dispatch(domain.Event{
		Type:         domain.EventBatchCreated,
		RuleID:       rule.ID,
		BatchID:      batch.ID,
		HealthPlanID: rule.HealthPlanID,
		Amount:       batch.TotalAmount,
		DueDate:      batch.DueDate,
		PaymentLink:  link,
	})
}
