package appointment

import (
	"context"
	"time"

	domain "github.com/ConectaSaudeBR/rede-scheduler/internal/domain/appointment"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/dto"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(repo domain.Repository) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{repo: repo}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	providerID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	provider, err := uc.repo.GetProviderByID(ctx, providerID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(provider.Timezone)

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	end := start.Add(24 * time.Hour)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, providerID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:            ap.ID,
			StartTime:     ap.StartTime,
			EndTime:       ap.EndTime,
			Status:        ap.Status,
			PatientName:   ap.Patient.Name,
			ProcedureName: ap.Procedure.Name,
			Amount:        ap.Amount,
			HealthPlanID:  ap.HealthPlanID,
		})
	}

	return out, nil
}
