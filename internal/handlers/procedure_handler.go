package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ConectaSaudeBR/rede-scheduler/internal/middleware"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
)

type ProcedureHandler struct {
	db *gorm.DB
}

func NewProcedureHandler(db *gorm.DB) *ProcedureHandler {
	return &ProcedureHandler{db: db}
}

type CreateProcedureRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"required,gt=0"`
	Amount      float64 `json:"amount" binding:"required,gte=0"`
	Category    string  `json:"category"`
}

type UpdateProcedureRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	DurationMin *int     `json:"duration_min"`
	Amount      *float64 `json:"amount"`
	Active      *bool    `json:"active"`
}

func (h *ProcedureHandler) List(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	activeStr := strings.TrimSpace(c.Query("active")) // "true", "false" ou vazio
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("provider_id = ?", providerID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if activeStr != "" {
		if activeStr == "true" {
			q = q.Where("active = ?", true)
		} else if activeStr == "false" {
			q = q.Where("active = ?", false)
		}
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var procedures []models.Procedure
	if err := q.
		Order("id ASC").
		Find(&procedures).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_procedures"})
		return
	}

	c.JSON(http.StatusOK, procedures)
}

func (h *ProcedureHandler) Create(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	var req CreateProcedureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	procedure := models.Procedure{
		ProviderID:  providerID,
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Amount:      req.Amount,
		Active:      true,
		Category:    strings.ToLower(req.Category),
	}

	if err := h.db.Create(&procedure).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_procedure"})
		return
	}

	c.JSON(http.StatusCreated, procedure)
}

func (h *ProcedureHandler) Update(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	id := c.Param("id")

	var procedure models.Procedure
	if err := h.db.
		Where("id = ? AND provider_id = ?", id, providerID).
		First(&procedure).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "procedure_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_procedure"})
		return
	}

	var req UpdateProcedureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		procedure.Name = *req.Name
	}
	if req.Description != nil {
		procedure.Description = *req.Description
	}
	if req.DurationMin != nil {
		procedure.DurationMin = *req.DurationMin
	}
	if req.Amount != nil {
		procedure.Amount = *req.Amount
	}
	if req.Active != nil {
		procedure.Active = *req.Active
	}

	if err := h.db.Save(&procedure).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_procedure"})
		return
	}

	c.JSON(http.StatusOK, procedure)
}
