package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/ConectaSaudeBR/rede-scheduler/internal/domain/schedule"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/httperr"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/middleware"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
	usecase "github.com/ConectaSaudeBR/rede-scheduler/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type ScheduleHandler struct {
	repo            domain.Repository
	writer          domain.Writer
	createException *usecase.CreateException
	cancelException *usecase.CancelException
}

func NewScheduleHandler(
	repo domain.Repository,
	writer domain.Writer,
) *ScheduleHandler {
	return &ScheduleHandler{
		repo:            repo,
		writer:          writer,
		createException: usecase.NewCreateException(writer),
		cancelException: usecase.NewCancelException(writer),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ScheduleDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Available  bool   `json:"available"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
	Location   string `json:"location"`
}

type ScheduleUpdateRequest struct {
	Days []ScheduleDayConfig `json:"days" binding:"required"`
}

type CreateExceptionRequest struct {
	StartDate string `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate   string `json:"end_date" binding:"required"`

	// vazios = dia inteiro
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`

	Type string `json:"type"` // vacation | sick | personal | other

	RecurrencePattern string `json:"recurrence_pattern"`
	RecurrenceEnd     string `json:"recurrence_end"`
}

// ======================================================
// GRADE SEMANAL
// ======================================================

func (h *ScheduleHandler) GetTemplates(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	tpls, err := h.repo.ListTemplates(c.Request.Context(), providerID)
	if err != nil {
		httperr.Internal(c, "failed_to_get_schedule", "Erro ao buscar a grade.")
		return
	}

	c.JSON(http.StatusOK, tpls)
}

// UpdateTemplates substitui a grade inteira; não existe edição parcial.
func (h *ScheduleHandler) UpdateTemplates(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	var req ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var templates []models.ScheduleTemplate
	for _, d := range req.Days {
		tpl := models.ScheduleTemplate{
			ProviderID: providerID,
			Weekday:    d.Weekday,
			Available:  d.Available,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			BreakStart: d.BreakStart,
			BreakEnd:   d.BreakEnd,
			Location:   d.Location,
		}

		if tpl.Available {
			if err := domain.ValidateTemplate(&tpl); err != nil {
				code, _ := httperr.BusinessCode(err)
				httperr.BadRequest(c, code, "Grade inválida.")
				return
			}
		}

		templates = append(templates, tpl)
	}

	if err := h.writer.ReplaceTemplates(c.Request.Context(), providerID, templates); err != nil {
		httperr.Internal(c, "failed_to_save_schedule", "Erro ao salvar a grade.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// EXCEÇÕES
// ======================================================

func (h *ScheduleHandler) CreateException(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	var req CreateExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	provider, err := h.repo.GetProviderByID(c.Request.Context(), providerID)
	if err != nil {
		httperr.NotFound(c, "provider_not_found", "Prestador não encontrado.")
		return
	}

	startDate, err := parseDateInProvider(provider, req.StartDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inicial inválida.")
		return
	}
	endDate, err := parseDateInProvider(provider, req.EndDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data final inválida.")
		return
	}

	var recurrenceEnd *time.Time
	if req.RecurrenceEnd != "" {
		re, err := parseDateInProvider(provider, req.RecurrenceEnd)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Fim da recorrência inválido.")
			return
		}
		recurrenceEnd = &re
	}

	exc, err := h.createException.Execute(c.Request.Context(), usecase.CreateExceptionInput{
		ProviderID:        providerID,
		StartDate:         startDate,
		EndDate:           endDate,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		Type:              req.Type,
		RecurrencePattern: req.RecurrencePattern,
		RecurrenceEnd:     recurrenceEnd,
	})
	if err != nil {
		if code, ok := httperr.BusinessCode(err); ok {
			if code == "exception_conflicts_with_bookings" {
				httperr.Conflict(c, code, "Há agendamentos ativos no período.")
				return
			}
			httperr.BadRequest(c, code, "Exceção inválida.")
			return
		}
		httperr.Internal(c, "failed_to_create_exception", "Erro ao criar a exceção.")
		return
	}

	c.JSON(http.StatusCreated, exc)
}

func (h *ScheduleHandler) DeleteException(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	if err := h.cancelException.Execute(c.Request.Context(), providerID, uint(id)); err != nil {
		if code, ok := httperr.BusinessCode(err); ok {
			httperr.NotFound(c, code, "Exceção não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_delete_exception", "Erro ao remover a exceção.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
