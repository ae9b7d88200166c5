package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ConectaSaudeBR/rede-scheduler/internal/middleware"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.Preload("Provider").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          user.ID,
		"name":        user.Name,
		"email":       user.Email,
		"phone":       user.Phone,
		"role":        user.Role,
		"provider_id": user.ProviderID,
		"provider": gin.H{
			"id":         user.Provider.ID,
			"kind":       user.Provider.Kind,
			"name":       user.Provider.Name,
			"slug":       user.Provider.Slug,
			"timezone":   user.Provider.Timezone,
			"avatar_url": user.Provider.AvatarURL,
		},
	})
}
