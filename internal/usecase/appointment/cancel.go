package appointment

import (
	"context"

	domain "github.com/ConectaSaudeBR/rede-scheduler/internal/domain/appointment"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/httperr"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/timezone"
)

type CancelAppointment struct {
	repo domain.Repository
}

func NewCancelAppointment(repo domain.Repository) *CancelAppointment {
	return &CancelAppointment{repo: repo}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	providerID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	provider, err := uc.repo.GetProviderByID(ctx, providerID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForProvider(ctx, appointmentID, providerID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(provider.Timezone)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	return ap, nil
}
