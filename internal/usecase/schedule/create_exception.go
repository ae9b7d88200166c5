package schedule

import (
	"context"
	"time"

	domain "github.com/ConectaSaudeBR/rede-scheduler/internal/domain/schedule"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/httperr"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateExceptionInput struct {
	ProviderID uint

	StartDate time.Time
	EndDate   time.Time

	// vazios = dia inteiro
	StartTime string
	EndTime   string

	Type string

	RecurrencePattern string
	RecurrenceEnd     *time.Time
}

// ======================================================
// USE CASE
// ======================================================

type CreateException struct {
	writer domain.Writer
}

func NewCreateException(writer domain.Writer) *CreateException {
	return &CreateException{writer: writer}
}

// Execute valida, rejeita exceção sobre agendamentos ativos e grava a
// exceção com as filhas de recorrência numa só transação. Rejeição não
// deixa estado parcial.
func (uc *CreateException) Execute(
	ctx context.Context,
	in CreateExceptionInput,
) (*models.ScheduleException, error) {

	exc := &models.ScheduleException{
		ProviderID:        in.ProviderID,
		StartDate:         in.StartDate,
		EndDate:           in.EndDate,
		StartTime:         in.StartTime,
		EndTime:           in.EndTime,
		Type:              in.Type,
		RecurrencePattern: in.RecurrencePattern,
		RecurrenceEnd:     in.RecurrenceEnd,
	}
	if exc.Type == "" {
		exc.Type = "other"
	}
	if exc.RecurrencePattern == "" {
		exc.RecurrencePattern = models.RecurrenceNone
	}

	if err := domain.ValidateException(exc); err != nil {
		return nil, err
	}

	// exceção em cima de agendamento ativo é rejeitada na hora
	count, err := uc.writer.CountActiveBookingsInRange(
		ctx,
		in.ProviderID,
		exc.StartDate,
		exc.EndDate.AddDate(0, 0, 1), // fim inclusivo
	)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, httperr.ErrBusiness("exception_conflicts_with_bookings")
	}

	children := domain.ExpandRecurrence(exc)

	if err := uc.writer.CreateException(ctx, exc, children); err != nil {
		return nil, err
	}

	return exc, nil
}
