package billing

import (
	"context"
	"log"
	"time"

	domain "github.com/ConectaSaudeBR/rede-scheduler/internal/domain/billing"
)

// ======================================================
// USE CASE
// ======================================================

// EvaluateAll é o ciclo completo do agregador: avalia cada regra ativa
// e depois varre os lotes pendentes. Falha em uma regra é registrada e
// não interrompe as demais — cada regra é uma unidade isolada.
type EvaluateAll struct {
	repo     domain.Repository
	evaluate *EvaluateRule
	scan     *ScanPending
}

func NewEvaluateAll(
	repo domain.Repository,
	evaluate *EvaluateRule,
	scan *ScanPending,
) *EvaluateAll {
	return &EvaluateAll{
		repo:     repo,
		evaluate: evaluate,
		scan:     scan,
	}
}

// Summary resume uma execução do ciclo, para log e para a resposta do
// endpoint de disparo manual.
type Summary struct {
	RulesEvaluated int `json:"rules_evaluated"`
	BatchesCreated int `json:"batches_created"`
	Failures       int `json:"failures"`
}

func (uc *EvaluateAll) Execute(ctx context.Context, now time.Time) (Summary, error) {
	rules, err := uc.repo.ListActiveRules(ctx)
	if err != nil {
		return Summary{}, err
	}

	var sum Summary
	sum.RulesEvaluated = len(rules)

	for i := range rules {
		rule := rules[i]

		created, err := uc.evaluate.Execute(ctx, rule, now)
		if err != nil {
			sum.Failures++
			log.Printf(
				"billing rule failed rule=%d plan=%d: %v",
				rule.ID, rule.HealthPlanID, err,
			)
			continue
		}
		sum.BatchesCreated += len(created)

		if err := uc.scan.Execute(ctx, rule, now); err != nil {
			sum.Failures++
			log.Printf(
				"billing scan failed rule=%d plan=%d: %v",
				rule.ID, rule.HealthPlanID, err,
			)
		}
	}

	return sum, nil
}
