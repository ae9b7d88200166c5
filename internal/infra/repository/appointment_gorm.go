package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/ConectaSaudeBR/rede-scheduler/internal/domain/appointment"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/httperr"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Provider
// --------------------------------------------------

func (r *AppointmentGormRepository) GetProviderByID(
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
// Procedure
// --------------------------------------------------

func (r *AppointmentGormRepository) GetProcedure(
	ctx context.Context,
	providerID uint,
	procedureID uint,
) (*models.Procedure, error) {

	var procedure models.Procedure
	if err := r.db.WithContext(ctx).
		Where("id = ? AND provider_id = ?", procedureID, providerID).
		First(&procedure).Error; err != nil {
		return nil, err
	}
	return &procedure, nil
}

// --------------------------------------------------
// Patient
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreatePatient(
	ctx context.Context,
	providerID uint,
	name string,
	phone string,
	email string,
	healthPlanID *uint,
) (*models.Patient, error) {

	var patient models.Patient
	err := r.db.WithContext(ctx).
		Where("provider_id = ? AND phone = ?", providerID, phone).
		First(&patient).Error

	if err == nil {
		return &patient, nil
	}

	patient = models.Patient{
		ProviderID:   providerID,
		Name:         name,
		Phone:        phone,
		Email:        email,
		HealthPlanID: healthPlanID,
	}

	if err := r.db.WithContext(ctx).Create(&patient).Error; err != nil {
		return nil, err
	}

	return &patient, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) AssertNoTimeConflict(
	ctx context.Context,
	providerID uint,
	start time.Time,
	end time.Time,
) error {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"provider_id = ? AND status = 'scheduled' AND start_time < ? AND end_time > ?",
			providerID,
			end,
			start,
		).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness("time_conflict")
	}

	return nil
}

// --------------------------------------------------
// Appointment (Cancel / Complete)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentForProvider(
	ctx context.Context,
	appointmentID uint,
	providerID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND provider_id = ?", appointmentID, providerID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	providerID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Procedure").
		Where(
			"provider_id = ? AND start_time >= ? AND start_time < ?",
			providerID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
