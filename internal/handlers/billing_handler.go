package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/ConectaSaudeBR/rede-scheduler/internal/domain/billing"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/httperr"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/timezone"
	usecase "github.com/ConectaSaudeBR/rede-scheduler/internal/usecase/billing"
)

// ======================================================
// HANDLER
// ======================================================

type BillingHandler struct {
	db  *gorm.DB
	run *usecase.EvaluateAll
}

func NewBillingHandler(db *gorm.DB, run *usecase.EvaluateAll) *BillingHandler {
	return &BillingHandler{db: db, run: run}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateHealthPlanRequest struct {
	Name  string `json:"name" binding:"required"`
	CNPJ  string `json:"cnpj"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type CreateBillingRuleRequest struct {
	HealthPlanID uint   `json:"health_plan_id" binding:"required"`
	ContractCode string `json:"contract_code"`

	BillingType string `json:"billing_type" binding:"required"`
	BillingDay  int    `json:"billing_day"`

	MinimumBillingAmount float64 `json:"minimum_billing_amount"`
	BatchAmountThreshold float64 `json:"batch_amount_threshold"`
	BatchCountThreshold  int     `json:"batch_count_threshold"`

	PaymentTermDays int `json:"payment_term_days"`

	NotifyOnGeneration  bool `json:"notify_on_generation"`
	NotifyBeforeDueDate bool `json:"notify_before_due_date"`
	NotifyDaysBefore    int  `json:"notify_days_before"`
	NotifyOnLatePayment bool `json:"notify_on_late_payment"`

	DiscountIfPaidUntilDays int     `json:"discount_if_paid_until_days"`
	DiscountPercent         float64 `json:"discount_percent"`
}

// ======================================================
// HEALTH PLANS
// ======================================================

func (h *BillingHandler) ListHealthPlans(c *gin.Context) {
	var plans []models.HealthPlan
	if err := h.db.Order("name ASC").Find(&plans).Error; err != nil {
		httperr.Internal(c, "failed_to_list_health_plans", "Erro ao listar planos.")
		return
	}

	c.JSON(http.StatusOK, plans)
}

func (h *BillingHandler) CreateHealthPlan(c *gin.Context) {
	var req CreateHealthPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	plan := models.HealthPlan{
		Name:  req.Name,
		CNPJ:  req.CNPJ,
		Email: req.Email,
		Phone: req.Phone,
	}

	if err := h.db.Create(&plan).Error; err != nil {
		httperr.Internal(c, "failed_to_create_health_plan", "Erro ao criar o plano.")
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// ======================================================
// RULES
// ======================================================

func (h *BillingHandler) ListRules(c *gin.Context) {
	q := h.db.Preload("HealthPlan")

	if planStr := c.Query("health_plan_id"); planStr != "" {
		if planID, err := strconv.ParseUint(planStr, 10, 64); err == nil {
			q = q.Where("health_plan_id = ?", uint(planID))
		}
	}

	var rules []models.BillingRule
	if err := q.Order("id ASC").Find(&rules).Error; err != nil {
		httperr.Internal(c, "failed_to_list_rules", "Erro ao listar regras.")
		return
	}

	c.JSON(http.StatusOK, rules)
}

func (h *BillingHandler) CreateRule(c *gin.Context) {
	var req CreateBillingRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var plan models.HealthPlan
	if err := h.db.First(&plan, req.HealthPlanID).Error; err != nil {
		httperr.NotFound(c, "health_plan_not_found", "Plano não encontrado.")
		return
	}

	rule := models.BillingRule{
		HealthPlanID: req.HealthPlanID,
		ContractCode: req.ContractCode,

		BillingType: req.BillingType,
		BillingDay:  req.BillingDay,

		MinimumBillingAmount: req.MinimumBillingAmount,
		BatchAmountThreshold: req.BatchAmountThreshold,
		BatchCountThreshold:  req.BatchCountThreshold,

		PaymentTermDays: req.PaymentTermDays,

		NotifyOnGeneration:  req.NotifyOnGeneration,
		NotifyBeforeDueDate: req.NotifyBeforeDueDate,
		NotifyDaysBefore:    req.NotifyDaysBefore,
		NotifyOnLatePayment: req.NotifyOnLatePayment,

		DiscountIfPaidUntilDays: req.DiscountIfPaidUntilDays,
		DiscountPercent:         req.DiscountPercent,

		Active: true,
	}

	if err := domain.ValidateRule(&rule); err != nil {
		code, _ := httperr.BusinessCode(err)
		httperr.BadRequest(c, code, "Regra inválida.")
		return
	}

	if err := h.db.Create(&rule).Error; err != nil {
		httperr.Internal(c, "failed_to_create_rule", "Erro ao criar a regra.")
		return
	}

	c.JSON(http.StatusCreated, rule)
}

// ======================================================
// BATCHES
// ======================================================

func (h *BillingHandler) ListBatches(c *gin.Context) {
	q := h.db.Preload("Items")

	if planStr := c.Query("health_plan_id"); planStr != "" {
		if planID, err := strconv.ParseUint(planStr, 10, 64); err == nil {
			q = q.Where("health_plan_id = ?", uint(planID))
		}
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var batches []models.BillingBatch
	if err := q.Order("created_at DESC").Find(&batches).Error; err != nil {
		httperr.Internal(c, "failed_to_list_batches", "Erro ao listar lotes.")
		return
	}

	c.JSON(http.StatusOK, batches)
}

// ======================================================
// RUN (disparo manual do ciclo)
// ======================================================

func (h *BillingHandler) Run(c *gin.Context) {
	summary, err := h.run.Execute(c.Request.Context(), timezone.Now())
	if err != nil {
		httperr.Internal(c, "failed_to_run_billing", "Erro ao executar o faturamento.")
		return
	}

	c.JSON(http.StatusOK, summary)
}
