package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ConectaSaudeBR/rede-scheduler/internal/middleware"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
)

type PatientHandler struct {
	db *gorm.DB
}

func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{db: db}
}

func (h *PatientHandler) List(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("provider_id = ?", providerID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var patients []models.Patient
	if err := q.
		Order("created_at DESC").
		Find(&patients).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed_to_list_patients",
		})
		return
	}

	c.JSON(http.StatusOK, patients)
}
