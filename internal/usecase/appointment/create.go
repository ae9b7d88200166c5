package appointment

import (
	"context"
	"time"

	domain "github.com/ConectaSaudeBR/rede-scheduler/internal/domain/appointment"
	schedDomain "github.com/ConectaSaudeBR/rede-scheduler/internal/domain/schedule"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/httperr"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ProviderID uint

	PatientName  string
	PatientPhone string
	PatientEmail string

	HealthPlanID *uint // nil = particular

	ProcedureID uint

	Date  string // YYYY-MM-DD
	Time  string // HH:mm
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	schedule schedDomain.Repository
}

func NewCreateAppointment(
	repo domain.Repository,
	schedule schedDomain.Repository,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		schedule: schedule,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Prestador
	// --------------------------------------------------
	provider, err := uc.repo.GetProviderByID(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Data / hora no fuso do prestador
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(provider.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// Antecedência mínima
	// --------------------------------------------------
	minAdvance := provider.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := timezone.NowIn(provider.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// Procedimento (duração + valor faturável)
	// --------------------------------------------------
	procedure, err := uc.repo.GetProcedure(ctx, in.ProviderID, in.ProcedureID)
	if err != nil {
		return nil, httperr.ErrBusiness("procedure_not_found")
	}

	end := start.Add(time.Duration(procedure.DurationMin) * time.Minute)

	// --------------------------------------------------
	// Janela da grade (dia da semana + pausa)
	// --------------------------------------------------
	if err := uc.assertWithinWindow(ctx, in.ProviderID, start, end); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Paciente (get or create)
	// --------------------------------------------------
	patient, err := uc.repo.GetOrCreatePatient(
		ctx,
		in.ProviderID,
		in.PatientName,
		in.PatientPhone,
		in.PatientEmail,
		in.HealthPlanID,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Conflito de horário (intervalos meio-abertos:
	// horários encostados não colidem)
	// --------------------------------------------------
	if err := uc.repo.AssertNoTimeConflict(ctx, in.ProviderID, start, end); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Criação (valor copiado do procedimento; é ele que
	// o faturamento usa depois, sem recálculo)
	// --------------------------------------------------
	ap := &models.Appointment{
		ProviderID:   in.ProviderID,
		PatientID:    patient.ID,
		ProcedureID:  procedure.ID,
		HealthPlanID: in.HealthPlanID,
		StartTime:    start,
		EndTime:      end,
		Amount:       procedure.Amount,
		Status:       string(domain.InitialStatus()),
		Notes:        in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	return ap, nil
}

// assertWithinWindow confere se [start, end) cabe na grade do dia,
// fora da pausa.
func (uc *CreateAppointment) assertWithinWindow(
	ctx context.Context,
	providerID uint,
	start time.Time,
	end time.Time,
) error {

	weekday := int(schedDomain.WeekdayOf(start))

	tpl, err := uc.schedule.GetTemplate(ctx, providerID, weekday)
	if err != nil {
		return err
	}

	// grade ausente chega como nil e cai no Available=false abaixo
	w := schedDomain.Window(tpl)
	if !w.Available {
		return httperr.ErrBusiness("outside_schedule")
	}

	s := schedDomain.Minutes(start.Hour()*60 + start.Minute())
	e := schedDomain.Minutes(end.Hour()*60 + end.Minute())

	if s < w.Start || e > w.End {
		return httperr.ErrBusiness("outside_schedule")
	}

	if w.HasBreak {
		brk := schedDomain.Interval{Start: w.BreakStart, End: w.BreakEnd}
		if brk.Overlaps(s, e) {
			return httperr.ErrBusiness("outside_schedule")
		}
	}

	return nil
}
