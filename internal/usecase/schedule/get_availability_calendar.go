package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/ConectaSaudeBR/rede-scheduler/internal/cache"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/config"
	domain "github.com/ConectaSaudeBR/rede-scheduler/internal/domain/schedule"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type AvailabilityCalendarInput struct {
	ProviderID uint
	StartDate  time.Time
	EndDate    time.Time // inclusivo; janela limitada a 90 dias
	Location   string
}

type AvailabilityCalendarOutput struct {
	Days []domain.DayAvailability `json:"days"`
}

// ======================================================
// USE CASE
// ======================================================

// GetAvailabilityCalendar responde a pergunta grosseira "tem dia livre?"
// para a interface de calendário: só checagens de nível de dia, sem
// enumerar slots. Um dia marcado disponível ainda pode não ter slot ao
// descer no detalhe — essa inconsistência é intencional.
type GetAvailabilityCalendar struct {
	repo  domain.Repository
	cache *cache.Cache
	cfg   *config.Config
}

func NewGetAvailabilityCalendar(
	repo domain.Repository,
	cache *cache.Cache,
	cfg *config.Config,
) *GetAvailabilityCalendar {
	return &GetAvailabilityCalendar{repo: repo, cache: cache, cfg: cfg}
}

func (uc *GetAvailabilityCalendar) Execute(
	ctx context.Context,
	in AvailabilityCalendarInput,
) (*AvailabilityCalendarOutput, error) {

	provider, err := uc.repo.GetProviderByID(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(provider.Timezone)
	start := time.Date(in.StartDate.Year(), in.StartDate.Month(), in.StartDate.Day(), 0, 0, 0, 0, loc)
	end := time.Date(in.EndDate.Year(), in.EndDate.Month(), in.EndDate.Day(), 0, 0, 0, 0, loc)

	start, end = domain.ClampCalendarRange(start, end, uc.cfg.CalendarMaxDays)

	cacheKey := fmt.Sprintf(
		"calendar:%d:%s:%s:%s",
		in.ProviderID,
		start.Format("2006-01-02"),
		end.Format("2006-01-02"),
		in.Location,
	)

	var out AvailabilityCalendarOutput
	if uc.cache.GetJSON(ctx, cacheKey, &out) {
		return &out, nil
	}

	maxDaily, err := uc.maxDaily(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}

	templates, err := uc.repo.ListTemplates(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}

	byWeekday := make(map[int]domain.DayWindow, len(templates))
	for i := range templates {
		byWeekday[templates[i].Weekday] = domain.Window(&templates[i])
	}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		weekday := int(domain.WeekdayOf(day))

		fullDay := false
		excs, err := uc.repo.ListExceptionsForDate(ctx, in.ProviderID, day)
		if err != nil {
			return nil, err
		}
		for _, e := range excs {
			if e.FullDay() {
				fullDay = true
				break
			}
		}

		bookedCount := 0
		if maxDaily > 0 {
			bookedCount, err = uc.repo.CountBookedForDay(ctx, in.ProviderID, day, day.AddDate(0, 0, 1))
			if err != nil {
				return nil, err
			}
		}

		available, reason := domain.EvaluateDay(domain.DayInput{
			Window:           byWeekday[weekday],
			FullDayException: fullDay,
			BookedCount:      bookedCount,
			MaxDaily:         maxDaily,
			LocationFilter:   in.Location,
		})

		out.Days = append(out.Days, domain.DayAvailability{
			Date:      day.Format("2006-01-02"),
			Weekday:   weekday,
			Available: available,
			Reason:    reason,
		})
	}

	uc.cache.SetJSON(ctx, cacheKey, &out)

	return &out, nil
}

func (uc *GetAvailabilityCalendar) maxDaily(ctx context.Context, providerID uint) (int, error) {
	sc, err := uc.repo.GetSlotConfig(ctx, providerID)
	if err != nil {
		return 0, err
	}
	if sc == nil || sc.MaxDailyAppointments == nil {
		return 0, nil
	}
	return *sc.MaxDailyAppointments, nil
}
