package appointment

import (
	"context"
	"time"

	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
)

type Repository interface {
	// -------- Provider --------
	GetProviderByID(
		ctx context.Context,
		id uint,
	) (*models.Provider, error)

	// -------- Procedure --------
	GetProcedure(
		ctx context.Context,
		providerID uint,
		procedureID uint,
	) (*models.Procedure, error)

	// -------- Patient --------
	GetOrCreatePatient(
		ctx context.Context,
		providerID uint,
		name string,
		phone string,
		email string,
		healthPlanID *uint,
	) (*models.Patient, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	AssertNoTimeConflict(
		ctx context.Context,
		providerID uint,
		start time.Time,
		end time.Time,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForProvider(
		ctx context.Context,
		appointmentID uint,
		providerID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointmentsForPeriod(
		ctx context.Context,
		providerID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
