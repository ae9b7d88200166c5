package schedule

import (
	"context"
	"time"

	"github.com/ConectaSaudeBR/rede-scheduler/internal/config"
	domain "github.com/ConectaSaudeBR/rede-scheduler/internal/domain/schedule"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type AvailableSlotsInput struct {
	ProviderID uint
	Date       time.Time // já no fuso do prestador, qualquer hora do dia
	Location   string    // filtro opcional
}

type AvailableSlotsOutput struct {
	Date   string        `json:"date"`
	Slots  []domain.Slot `json:"slots"`
	Reason string        `json:"reason,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

type GetAvailableSlots struct {
	repo domain.Repository
	cfg  *config.Config
}

func NewGetAvailableSlots(repo domain.Repository, cfg *config.Config) *GetAvailableSlots {
	return &GetAvailableSlots{repo: repo, cfg: cfg}
}

// Execute resolve grade, exceções e agendamentos do dia e delega o
// cálculo ao motor puro. É uma leitura sem efeito colateral: pode rodar
// em paralelo para o mesmo prestador sem cuidado extra.
func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	in AvailableSlotsInput,
) (*AvailableSlotsOutput, error) {

	provider, err := uc.repo.GetProviderByID(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(provider.Timezone)
	dayStart := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)
	out := &AvailableSlotsOutput{Date: dayStart.Format("2006-01-02")}

	weekday := int(domain.WeekdayOf(dayStart))

	// grade ausente chega como (nil, nil) e vira indisponibilidade lá
	// na janela; erro aqui é falha real de infraestrutura
	tpl, err := uc.repo.GetTemplate(ctx, in.ProviderID, weekday)
	if err != nil {
		return nil, err
	}

	excs, err := uc.repo.ListExceptionsForDate(ctx, in.ProviderID, dayStart)
	if err != nil {
		return nil, err
	}

	fullDay := false
	for _, e := range excs {
		if e.FullDay() {
			fullDay = true
			break
		}
	}

	booked, err := uc.repo.ListBookedForDay(ctx, in.ProviderID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	intervals := make([]domain.Interval, 0, len(booked))
	for _, ap := range booked {
		s := ap.StartTime.In(loc)
		e := ap.EndTime.In(loc)
		intervals = append(intervals, domain.Interval{
			Start: domain.Minutes(s.Hour()*60 + s.Minute()),
			End:   domain.Minutes(e.Hour()*60 + e.Minute()),
		})
	}

	slotMin, bufferMin, maxDaily, err := uc.resolveParams(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}

	slots, reason := domain.ComputeDaySlots(domain.SlotInput{
		Window:           domain.Window(tpl),
		FullDayException: fullDay,
		Booked:           intervals,
		SlotMinutes:      slotMin,
		BufferMinutes:    bufferMin,
		MaxDaily:         maxDaily,
		LocationFilter:   in.Location,
	})

	out.Slots = slots
	out.Reason = reason
	return out, nil
}

// resolveParams aplica os defaults do sistema sobre a configuração do
// prestador.
func (uc *GetAvailableSlots) resolveParams(
	ctx context.Context,
	providerID uint,
) (slotMin, bufferMin, maxDaily int, err error) {

	slotMin = uc.cfg.DefaultSlotMinutes
	bufferMin = uc.cfg.DefaultBufferMinutes

	sc, err := uc.repo.GetSlotConfig(ctx, providerID)
	if err != nil {
		return 0, 0, 0, err
	}
	if sc == nil {
		return slotMin, bufferMin, 0, nil
	}

	if sc.SlotDurationMin > 0 {
		slotMin = sc.SlotDurationMin
	}
	if sc.BufferMin > 0 {
		bufferMin = sc.BufferMin
	}
	if sc.MaxDailyAppointments != nil {
		maxDaily = *sc.MaxDailyAppointments
	}

	return slotMin, bufferMin, maxDaily, nil
}
