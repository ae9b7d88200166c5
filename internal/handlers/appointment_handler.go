package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	apDomain "github.com/ConectaSaudeBR/rede-scheduler/internal/domain/appointment"
	schedDomain "github.com/ConectaSaudeBR/rede-scheduler/internal/domain/schedule"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/httperr"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/httpresp"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/middleware"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
	usecase "github.com/ConectaSaudeBR/rede-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db       *gorm.DB
	repo     apDomain.Repository
	create   *usecase.CreateAppointment
	cancel   *usecase.CancelAppointment
	complete *usecase.CompleteAppointment
	list     *usecase.ListAppointmentsByDate
}

func NewAppointmentHandler(
	db *gorm.DB,
	repo apDomain.Repository,
	schedule schedDomain.Repository,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:       db,
		repo:     repo,
		create:   usecase.NewCreateAppointment(repo, schedule),
		cancel:   usecase.NewCancelAppointment(repo),
		complete: usecase.NewCompleteAppointment(repo),
		list:     usecase.NewListAppointmentsByDate(repo),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	PatientName  string `json:"patient_name" binding:"required"`
	PatientPhone string `json:"patient_phone" binding:"required"`
	PatientEmail string `json:"patient_email"`

	HealthPlanID *uint `json:"health_plan_id"` // nil = particular

	ProcedureID uint   `json:"procedure_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Notes       string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), usecase.CreateAppointmentInput{
		ProviderID:   providerID,
		PatientName:  req.PatientName,
		PatientPhone: req.PatientPhone,
		PatientEmail: req.PatientEmail,
		HealthPlanID: req.HealthPlanID,
		ProcedureID:  req.ProcedureID,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
	})
	if err != nil {
		h.writeCreateError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) writeCreateError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "failed_to_create_appointment", "Erro ao criar o agendamento.")
		return
	}

	switch code {
	case "time_conflict":
		httperr.Conflict(c, code, "Horário já ocupado.")
	case "procedure_not_found":
		httperr.NotFound(c, code, "Procedimento não encontrado.")
	default:
		httperr.BadRequest(c, code, "Agendamento inválido.")
	}
}

// ======================================================
// CANCEL / COMPLETE
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, func(providerID, appointmentID uint) (*models.Appointment, error) {
		return h.cancel.Execute(c.Request.Context(), providerID, appointmentID)
	})
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, func(providerID, appointmentID uint) (*models.Appointment, error) {
		return h.complete.Execute(c.Request.Context(), providerID, appointmentID)
	})
}

func (h *AppointmentHandler) transition(
	c *gin.Context,
	fn func(providerID, appointmentID uint) (*models.Appointment, error),
) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := fn(providerID, uint(id))
	if err != nil {
		if code, ok := httperr.BusinessCode(err); ok {
			if code == "appointment_not_found" {
				httperr.NotFound(c, code, "Agendamento não encontrado.")
				return
			}
			httperr.BadRequest(c, code, "Transição inválida.")
			return
		}
		httperr.Internal(c, "failed_to_update_appointment", "Erro ao atualizar o agendamento.")
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

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

	items, err := h.list.Execute(c.Request.Context(), providerID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, items)
}
