package appointment

import (
	"context"

	domain "github.com/ConectaSaudeBR/rede-scheduler/internal/domain/appointment"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/httperr"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/timezone"
)

type CompleteAppointment struct {
	repo domain.Repository
}

func NewCompleteAppointment(repo domain.Repository) *CompleteAppointment {
	return &CompleteAppointment{repo: repo}
}

// Execute conclui o atendimento. A partir daqui ele é um evento
// faturável: entra no conjunto "não faturado" do plano até ser anexado
// a um lote.
func (uc *CompleteAppointment) Execute(
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
	if err := domain.Complete(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	return ap, nil
}
