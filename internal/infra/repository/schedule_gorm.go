package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/ConectaSaudeBR/rede-scheduler/internal/domain/schedule"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Provider
// --------------------------------------------------

func (r *ScheduleGormRepository) GetProviderByID(
	ctx context.Context,
	id uint,
) (*models.Provider, error) {

	var provider models.Provider
	if err := r.db.WithContext(ctx).First(&provider, id).Error; err != nil {
		return nil, err
	}
	return &provider, nil
}

// --------------------------------------------------
// Template (grade semanal)
// --------------------------------------------------

func (r *ScheduleGormRepository) GetTemplate(
	ctx context.Context,
	providerID uint,
	weekday int,
) (*models.ScheduleTemplate, error) {

	var tpl models.ScheduleTemplate
	err := r.db.WithContext(ctx).
		Where("provider_id = ? AND weekday = ?", providerID, weekday).
		First(&tpl).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		// dia sem grade não é erro: o motor responde com motivo
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &tpl, nil
}

func (r *ScheduleGormRepository) ListTemplates(
	ctx context.Context,
	providerID uint,
) ([]models.ScheduleTemplate, error) {

	var tpls []models.ScheduleTemplate
	if err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("weekday ASC").
		Find(&tpls).Error; err != nil {
		return nil, err
	}

	return tpls, nil
}

// ReplaceTemplates troca a grade inteira do prestador numa transação:
// apaga tudo e recria. Edição parcial de grade não existe.
func (r *ScheduleGormRepository) ReplaceTemplates(
	ctx context.Context,
	providerID uint,
	templates []models.ScheduleTemplate,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("provider_id = ?", providerID).
			Delete(&models.ScheduleTemplate{}).Error; err != nil {
			return err
		}

		for i := range templates {
			templates[i].ID = 0
			templates[i].ProviderID = providerID
		}

		if len(templates) == 0 {
			return nil
		}
		return tx.Create(&templates).Error
	})
}

// --------------------------------------------------
// Exception
// --------------------------------------------------

func (r *ScheduleGormRepository) ListExceptionsForDate(
	ctx context.Context,
	providerID uint,
	date time.Time,
) ([]models.ScheduleException, error) {

	var excs []models.ScheduleException
	if err := r.db.WithContext(ctx).
		Where(
			"provider_id = ? AND start_date <= ? AND end_date >= ?",
			providerID, date, date,
		).
		Find(&excs).Error; err != nil {
		return nil, err
	}

	return excs, nil
}

// CreateException grava a exceção mãe e, na mesma transação, as filhas
// expandidas da recorrência com ParentID apontando para a mãe.
func (r *ScheduleGormRepository) CreateException(
	ctx context.Context,
	exc *models.ScheduleException,
	children []models.ScheduleException,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(exc).Error; err != nil {
			return err
		}

		for i := range children {
			children[i].ParentID = &exc.ID
		}

		if len(children) == 0 {
			return nil
		}
		return tx.Create(&children).Error
	})
}

func (r *ScheduleGormRepository) GetException(
	ctx context.Context,
	providerID uint,
	exceptionID uint,
) (*models.ScheduleException, error) {

	var exc models.ScheduleException
	err := r.db.WithContext(ctx).
		Where("id = ? AND provider_id = ?", exceptionID, providerID).
		First(&exc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &exc, nil
}

func (r *ScheduleGormRepository) DeleteExceptionTree(
	ctx context.Context,
	exceptionID uint,
) error {

	return r.db.WithContext(ctx).
		Where("id = ? OR parent_id = ?", exceptionID, exceptionID).
		Delete(&models.ScheduleException{}).Error
}

// --------------------------------------------------
// Booked (atendimentos do dia)
// --------------------------------------------------

func (r *ScheduleGormRepository) ListBookedForDay(
	ctx context.Context,
	providerID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"provider_id = ? AND status <> 'cancelled' AND start_time >= ? AND start_time < ?",
			providerID, dayStart, dayEnd,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *ScheduleGormRepository) CountBookedForDay(
	ctx context.Context,
	providerID uint,
	dayStart time.Time,
	dayEnd time.Time,
) (int, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"provider_id = ? AND status <> 'cancelled' AND start_time >= ? AND start_time < ?",
			providerID, dayStart, dayEnd,
		).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return int(count), nil
}

func (r *ScheduleGormRepository) CountActiveBookingsInRange(
	ctx context.Context,
	providerID uint,
	from time.Time,
	to time.Time,
) (int, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"provider_id = ? AND status = 'scheduled' AND start_time >= ? AND start_time < ?",
			providerID, from, to,
		).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return int(count), nil
}

// --------------------------------------------------
// SlotConfig
// --------------------------------------------------

func (r *ScheduleGormRepository) GetSlotConfig(
	ctx context.Context,
	providerID uint,
) (*models.SlotConfig, error) {

	var cfg models.SlotConfig
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		First(&cfg).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		// sem configuração: os defaults do sistema se aplicam
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Compile-time checks
var (
	_ domain.Repository = (*ScheduleGormRepository)(nil)
	_ domain.Writer     = (*ScheduleGormRepository)(nil)
)
