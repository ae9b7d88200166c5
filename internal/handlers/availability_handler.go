package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/ConectaSaudeBR/rede-scheduler/internal/domain/schedule"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/httperr"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/middleware"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
	usecase "github.com/ConectaSaudeBR/rede-scheduler/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	db       *gorm.DB
	repo     domain.Repository
	slots    *usecase.GetAvailableSlots
	calendar *usecase.GetAvailabilityCalendar
}

func NewAvailabilityHandler(
	db *gorm.DB,
	repo domain.Repository,
	slots *usecase.GetAvailableSlots,
	calendar *usecase.GetAvailabilityCalendar,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		db:       db,
		repo:     repo,
		slots:    slots,
		calendar: calendar,
	}
}

// ======================================================
// ÁREA LOGADA
// ======================================================

func (h *AvailabilityHandler) Slots(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)
	h.slotsFor(c, providerID)
}

func (h *AvailabilityHandler) Calendar(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)
	h.calendarFor(c, providerID)
}

// ======================================================
// ÁREA PÚBLICA (agendamento pelo paciente)
// ======================================================

func (h *AvailabilityHandler) PublicSlots(c *gin.Context) {
	provider, ok := h.providerBySlug(c)
	if !ok {
		return
	}
	h.slotsFor(c, provider.ID)
}

func (h *AvailabilityHandler) PublicCalendar(c *gin.Context) {
	provider, ok := h.providerBySlug(c)
	if !ok {
		return
	}
	h.calendarFor(c, provider.ID)
}

func (h *AvailabilityHandler) providerBySlug(c *gin.Context) (*models.Provider, bool) {
	slug := c.Param("slug")

	var provider models.Provider
	if err := h.db.
		Where("slug = ? AND active = ?", slug, true).
		First(&provider).Error; err != nil {

		httperr.NotFound(c, "provider_not_found", "Prestador não encontrado.")
		return nil, false
	}

	return &provider, true
}

// ======================================================
// NÚCLEO
// ======================================================

func (h *AvailabilityHandler) slotsFor(c *gin.Context, providerID uint) {
	provider, err := h.repo.GetProviderByID(c.Request.Context(), providerID)
	if err != nil {
		httperr.NotFound(c, "provider_not_found", "Prestador não encontrado.")
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Informe a data (YYYY-MM-DD).")
		return
	}

	date, err := parseDateInProvider(provider, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	out, err := h.slots.Execute(c.Request.Context(), usecase.AvailableSlotsInput{
		ProviderID: providerID,
		Date:       date,
		Location:   c.Query("location"),
	})
	if err != nil {
		httperr.Internal(c, "failed_to_compute_slots", "Erro ao calcular horários.")
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *AvailabilityHandler) calendarFor(c *gin.Context, providerID uint) {
	provider, err := h.repo.GetProviderByID(c.Request.Context(), providerID)
	if err != nil {
		httperr.NotFound(c, "provider_not_found", "Prestador não encontrado.")
		return
	}

	startStr := c.Query("start")
	endStr := c.Query("end")
	if startStr == "" || endStr == "" {
		httperr.BadRequest(c, "missing_range", "Informe start e end (YYYY-MM-DD).")
		return
	}

	start, err := parseDateInProvider(provider, startStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inicial inválida.")
		return
	}
	end, err := parseDateInProvider(provider, endStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data final inválida.")
		return
	}
	if end.Before(start) {
		httperr.BadRequest(c, "invalid_range", "Intervalo inválido.")
		return
	}

	out, err := h.calendar.Execute(c.Request.Context(), usecase.AvailabilityCalendarInput{
		ProviderID: providerID,
		StartDate:  start,
		EndDate:    end,
		Location:   c.Query("location"),
	})
	if err != nil {
		httperr.Internal(c, "failed_to_compute_calendar", "Erro ao calcular o calendário.")
		return
	}

	c.JSON(http.StatusOK, out)
}
