package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ConectaSaudeBR/rede-scheduler/internal/config"
	domain "github.com/ConectaSaudeBR/rede-scheduler/internal/domain/schedule"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
)

// ======================================================
// FAKE
// ======================================================

type fakeScheduleRepo struct {
	provider   *models.Provider
	templates  map[int]*models.ScheduleTemplate // por weekday
	exceptions []models.ScheduleException
	booked     []models.Appointment
	slotConfig *models.SlotConfig

	templateErr error
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		provider: &models.Provider{
			ID:       1,
			Kind:     models.ProviderProfessional,
			Name:     "Dra. Helena Prado",
			Timezone: "America/Sao_Paulo",
		},
		templates: make(map[int]*models.ScheduleTemplate),
	}
}

func (f *fakeScheduleRepo) GetProviderByID(ctx context.Context, id uint) (*models.Provider, error) {
	return f.provider, nil
}

func (f *fakeScheduleRepo) GetTemplate(ctx context.Context, providerID uint, weekday int) (*models.ScheduleTemplate, error) {
	if f.templateErr != nil {
		return nil, f.templateErr
	}
	return f.templates[weekday], nil
}

func (f *fakeScheduleRepo) ListTemplates(ctx context.Context, providerID uint) ([]models.ScheduleTemplate, error) {
	var out []models.ScheduleTemplate
	for _, tpl := range f.templates {
		out = append(out, *tpl)
	}
	return out, nil
}

func (f *fakeScheduleRepo) ListExceptionsForDate(ctx context.Context, providerID uint, date time.Time) ([]models.ScheduleException, error) {
	var out []models.ScheduleException
	for _, e := range f.exceptions {
		if !date.Before(e.StartDate) && !date.After(e.EndDate) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) ListBookedForDay(ctx context.Context, providerID uint, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.booked {
		if !ap.StartTime.Before(dayStart) && ap.StartTime.Before(dayEnd) && ap.Status != "cancelled" {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) CountBookedForDay(ctx context.Context, providerID uint, dayStart, dayEnd time.Time) (int, error) {
	apps, _ := f.ListBookedForDay(ctx, providerID, dayStart, dayEnd)
	return len(apps), nil
}

func (f *fakeScheduleRepo) GetSlotConfig(ctx context.Context, providerID uint) (*models.SlotConfig, error) {
	return f.slotConfig, nil
}

var _ domain.Repository = (*fakeScheduleRepo)(nil)

// ======================================================
// HELPERS
// ======================================================

func slotsConfig() *config.Config {
	return &config.Config{
		DefaultSlotMinutes:   30,
		DefaultBufferMinutes: 0,
		CalendarMaxDays:      90,
	}
}

func spLoc() *time.Location {
	loc, _ := time.LoadLocation("America/Sao_Paulo")
	return loc
}

// segunda-feira
func monday() time.Time {
	return time.Date(2026, 3, 2, 0, 0, 0, 0, spLoc())
}

func weekdayTemplate(weekday int, start, end string) *models.ScheduleTemplate {
	return &models.ScheduleTemplate{
		ProviderID: 1,
		Weekday:    weekday,
		Available:  true,
		StartTime:  start,
		EndTime:    end,
	}
}

// ======================================================
// TESTS
// ======================================================

func TestGetAvailableSlots(t *testing.T) {
	ctx := context.Background()

	t.Run("ManhaLivre", func(t *testing.T) {
		repo := newFakeScheduleRepo()
		repo.templates[1] = weekdayTemplate(1, "09:00", "12:00")

		uc := NewGetAvailableSlots(repo, slotsConfig())
		out, err := uc.Execute(ctx, AvailableSlotsInput{ProviderID: 1, Date: monday()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Reason != "" {
			t.Fatalf("unexpected reason %q", out.Reason)
		}
		if len(out.Slots) != 6 {
			t.Fatalf("expected 6 slots, got %d", len(out.Slots))
		}
		if out.Date != "2026-03-02" {
			t.Fatalf("data errada: %s", out.Date)
		}
	})

	t.Run("AgendamentoOcupaSlot", func(t *testing.T) {
		repo := newFakeScheduleRepo()
		repo.templates[1] = weekdayTemplate(1, "09:00", "12:00")
		repo.booked = []models.Appointment{{
			ProviderID: 1,
			StartTime:  time.Date(2026, 3, 2, 10, 0, 0, 0, spLoc()),
			EndTime:    time.Date(2026, 3, 2, 10, 30, 0, 0, spLoc()),
			Status:     "scheduled",
		}}

		uc := NewGetAvailableSlots(repo, slotsConfig())
		out, err := uc.Execute(ctx, AvailableSlotsInput{ProviderID: 1, Date: monday()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Slots) != 5 {
			t.Fatalf("expected 5 slots, got %d", len(out.Slots))
		}
		for _, s := range out.Slots {
			if s.StartLabel == "10:00" {
				t.Fatal("slot ocupado apareceu na lista")
			}
		}
	})

	t.Run("DiaSemGradeNaoEhErro", func(t *testing.T) {
		repo := newFakeScheduleRepo()

		uc := NewGetAvailableSlots(repo, slotsConfig())
		out, err := uc.Execute(ctx, AvailableSlotsInput{ProviderID: 1, Date: monday()})
		if err != nil {
			t.Fatalf("dia sem grade deveria voltar motivo, não erro: %v", err)
		}
		if out.Reason != domain.ReasonNotInSchedule || len(out.Slots) != 0 {
			t.Fatalf("got reason=%q slots=%d", out.Reason, len(out.Slots))
		}
	})

	t.Run("FalhaDeBancoNaoViraIndisponibilidade", func(t *testing.T) {
		repo := newFakeScheduleRepo()
		repo.templateErr = errors.New("driver: bad connection")

		uc := NewGetAvailableSlots(repo, slotsConfig())
		out, err := uc.Execute(ctx, AvailableSlotsInput{ProviderID: 1, Date: monday()})
		if err == nil {
			t.Fatalf("falha de infraestrutura deveria subir, não virar motivo: %+v", out)
		}
	})

	t.Run("ExcecaoDiaInteiroBloqueia", func(t *testing.T) {
		repo := newFakeScheduleRepo()
		repo.templates[1] = weekdayTemplate(1, "09:00", "12:00")
		repo.exceptions = []models.ScheduleException{{
			ProviderID: 1,
			StartDate:  monday(),
			EndDate:    monday(),
			Type:       "vacation",
		}}

		uc := NewGetAvailableSlots(repo, slotsConfig())
		out, err := uc.Execute(ctx, AvailableSlotsInput{ProviderID: 1, Date: monday()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Reason != domain.ReasonException {
			t.Fatalf("expected %s, got %q", domain.ReasonException, out.Reason)
		}
	})

	t.Run("ExcecaoParcialNaoBloqueiaSlots", func(t *testing.T) {
		// exceção com horário não é consultada slot a slot; o dia segue
		// aberto por inteiro
		repo := newFakeScheduleRepo()
		repo.templates[1] = weekdayTemplate(1, "09:00", "12:00")
		repo.exceptions = []models.ScheduleException{{
			ProviderID: 1,
			StartDate:  monday(),
			EndDate:    monday(),
			StartTime:  "10:00",
			EndTime:    "11:00",
		}}

		uc := NewGetAvailableSlots(repo, slotsConfig())
		out, err := uc.Execute(ctx, AvailableSlotsInput{ProviderID: 1, Date: monday()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Slots) != 6 {
			t.Fatalf("exceção parcial não deveria remover slots: %d", len(out.Slots))
		}
	})

	t.Run("ConfiguracaoDoPrestadorPrevalece", func(t *testing.T) {
		repo := newFakeScheduleRepo()
		repo.templates[1] = weekdayTemplate(1, "09:00", "12:00")
		maxDaily := 2
		repo.slotConfig = &models.SlotConfig{
			ProviderID:           1,
			SlotDurationMin:      60,
			MaxDailyAppointments: &maxDaily,
		}

		uc := NewGetAvailableSlots(repo, slotsConfig())
		out, err := uc.Execute(ctx, AvailableSlotsInput{ProviderID: 1, Date: monday()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// 3 candidatos de 60min, teto corta em 2
		if len(out.Slots) != 2 {
			t.Fatalf("expected 2 slots, got %d", len(out.Slots))
		}
		if out.Slots[0].EndLabel != "10:00" {
			t.Fatalf("duração configurada ignorada: %s", out.Slots[0].Display)
		}
	})
}

func TestGetAvailabilityCalendar(t *testing.T) {
	ctx := context.Background()

	repo := newFakeScheduleRepo()
	repo.templates[1] = weekdayTemplate(1, "09:00", "12:00") // só segunda

	uc := NewGetAvailabilityCalendar(repo, nil, slotsConfig())

	out, err := uc.Execute(ctx, AvailabilityCalendarInput{
		ProviderID: 1,
		StartDate:  monday(),
		EndDate:    monday().AddDate(0, 0, 6),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(out.Days))
	}

	for _, d := range out.Days {
		if d.Weekday == 1 {
			if !d.Available {
				t.Fatalf("segunda deveria estar disponível: %+v", d)
			}
			continue
		}
		if d.Available || d.Reason != domain.ReasonNotInSchedule {
			t.Fatalf("dia sem grade marcado disponível: %+v", d)
		}
	}
}

func TestGetAvailabilityCalendarClampsRange(t *testing.T) {
	ctx := context.Background()

	repo := newFakeScheduleRepo()
	uc := NewGetAvailabilityCalendar(repo, nil, slotsConfig())

	out, err := uc.Execute(ctx, AvailabilityCalendarInput{
		ProviderID: 1,
		StartDate:  monday(),
		EndDate:    monday().AddDate(0, 0, 365),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Days) != 90 {
		t.Fatalf("janela deveria ser cortada em 90 dias, got %d", len(out.Days))
	}
}
