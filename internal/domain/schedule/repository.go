package schedule

import (
	"context"
	"time"

	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
)

// Repository é o colaborador de persistência do motor de agenda.
// Só leitura: o motor nunca escreve.
type Repository interface {
	GetProviderByID(
		ctx context.Context,
		id uint,
	) (*models.Provider, error)

	// weekday segue domingo=0..sábado=6
	GetTemplate(
		ctx context.Context,
		providerID uint,
		weekday int,
	) (*models.ScheduleTemplate, error)

	ListTemplates(
		ctx context.Context,
		providerID uint,
	) ([]models.ScheduleTemplate, error)

	// Exceções (cheias ou parciais) cobrindo a data
	ListExceptionsForDate(
		ctx context.Context,
		providerID uint,
		date time.Time,
	) ([]models.ScheduleException, error)

	// Atendimentos não cancelados do dia, em ordem cronológica
	ListBookedForDay(
		ctx context.Context,
		providerID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Appointment, error)

	CountBookedForDay(
		ctx context.Context,
		providerID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) (int, error)

	// nil quando o prestador nunca configurou (defaults se aplicam)
	GetSlotConfig(
		ctx context.Context,
		providerID uint,
	) (*models.SlotConfig, error)
}

// Writer cobre as operações de escrita da agenda (exceções e grade).
type Writer interface {
	CreateException(
		ctx context.Context,
		exc *models.ScheduleException,
		children []models.ScheduleException,
	) error

	// nil quando a exceção não existe para o prestador
	GetException(
		ctx context.Context,
		providerID uint,
		exceptionID uint,
	) (*models.ScheduleException, error)

	// Remove a exceção e as filhas geradas por recorrência
	DeleteExceptionTree(
		ctx context.Context,
		exceptionID uint,
	) error

	// Conta atendimentos não cancelados dentro do intervalo da exceção
	CountActiveBookingsInRange(
		ctx context.Context,
		providerID uint,
		from time.Time,
		to time.Time,
	) (int, error)

	ReplaceTemplates(
		ctx context.Context,
		providerID uint,
		templates []models.ScheduleTemplate,
	) error
}
