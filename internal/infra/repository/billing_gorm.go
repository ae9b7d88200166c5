package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/ConectaSaudeBR/rede-scheduler/internal/domain/billing"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/httperr"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
)

type BillingGormRepository struct {
	db *gorm.DB
}

func NewBillingGormRepository(db *gorm.DB) *BillingGormRepository {
	return &BillingGormRepository{db: db}
}

// --------------------------------------------------
// Rules
// --------------------------------------------------

func (r *BillingGormRepository) ListActiveRules(
	ctx context.Context,
) ([]models.BillingRule, error) {

	var rules []models.BillingRule
	if err := r.db.WithContext(ctx).
		Preload("HealthPlan").
		Where("active = ?", true).
		Order("id ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}

	return rules, nil
}

// --------------------------------------------------
// Batches
// --------------------------------------------------

func (r *BillingGormRepository) LastBatch(
	ctx context.Context,
	ruleID uint,
) (*models.BillingBatch, error) {

	var batch models.BillingBatch
	err := r.db.WithContext(ctx).
		Where("billing_rule_id = ?", ruleID).
		Order("period_end DESC").
		First(&batch).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &batch, nil
}

// UnbilledEvents: atendimentos concluídos do plano ainda sem item de
// lote. O índice único em billing_batch_items.appointment_id garante no
// banco que o anti-join nunca deixa um atendimento ser faturado duas
// vezes, mesmo em execuções concorrentes.
func (r *BillingGormRepository) UnbilledEvents(
	ctx context.Context,
	healthPlanID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Where(
			`status = 'completed' AND health_plan_id = ?
			AND NOT EXISTS (
				SELECT 1 FROM billing_batch_items i
				WHERE i.appointment_id = appointments.id
			)`,
			healthPlanID,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// CreateBatch grava cabeçalho + itens numa transação única.
// O índice único em billing_batch_items.appointment_id é a última linha
// de defesa contra faturar o mesmo atendimento duas vezes; quando duas
// execuções correm em paralelo, a segunda cai aqui.
func (r *BillingGormRepository) CreateBatch(
	ctx context.Context,
	batch *models.BillingBatch,
	items []models.BillingBatchItem,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(batch).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].BillingBatchID = batch.ID
		}

		return tx.Create(&items).Error
	})

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return httperr.ErrBusiness("appointment_already_billed")
	}

	return err
}

func (r *BillingGormRepository) ListPendingBatches(
	ctx context.Context,
	ruleID uint,
) ([]models.BillingBatch, error) {

	var batches []models.BillingBatch
	if err := r.db.WithContext(ctx).
		Where("billing_rule_id = ? AND status = ?", ruleID, "pending").
		Order("due_date ASC").
		Find(&batches).Error; err != nil {
		return nil, err
	}

	return batches, nil
}

// Compile-time check
var _ domain.Repository = (*BillingGormRepository)(nil)
