package billing

import (
	"context"

	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
)

// Repository é o colaborador de persistência do agregador de
// faturamento.
type Repository interface {
	ListActiveRules(
		ctx context.Context,
	) ([]models.BillingRule, error)

	// nil quando a regra nunca gerou lote
	LastBatch(
		ctx context.Context,
		ruleID uint,
	) (*models.BillingBatch, error)

	// UnbilledEvents materializa o anti-join "atendimento concluído do
	// plano sem item de lote". A query pertence à persistência; o
	// núcleo nunca expressa o anti-join.
	UnbilledEvents(
		ctx context.Context,
		healthPlanID uint,
	) ([]models.Appointment, error)

	// CreateBatch grava cabeçalho + itens numa única transação: um lote
	// parcialmente anexado nunca pode ser observável.
	CreateBatch(
		ctx context.Context,
		batch *models.BillingBatch,
		items []models.BillingBatchItem,
	) error

	ListPendingBatches(
		ctx context.Context,
		ruleID uint,
	) ([]models.BillingBatch, error)
}
