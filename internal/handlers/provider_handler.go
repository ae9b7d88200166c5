package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ConectaSaudeBR/rede-scheduler/internal/httperr"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/media"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/middleware"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/models"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/storage"
)

const maxUploadBytes = 8 << 20 // 8 MB

type ProviderHandler struct {
	db       *gorm.DB
	uploader *storage.Uploader
}

func NewProviderHandler(db *gorm.DB, uploader *storage.Uploader) *ProviderHandler {
	return &ProviderHandler{db: db, uploader: uploader}
}

type UpdateProviderRequest struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	Timezone          *string `json:"timezone"`
	RegistrationCode  *string `json:"registration_code"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
}

// ======================================================
// PROFILE
// ======================================================

func (h *ProviderHandler) GetMe(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	var provider models.Provider
	if err := h.db.First(&provider, providerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "provider_not_found", "Prestador não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_provider", "Erro ao buscar dados do prestador.")
		return
	}

	c.JSON(http.StatusOK, provider)
}

func (h *ProviderHandler) UpdateMe(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	var provider models.Provider
	if err := h.db.First(&provider, providerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "provider_not_found", "Prestador não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_provider", "Erro ao buscar dados do prestador.")
		return
	}

	var req UpdateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		provider.Name = *req.Name
	}
	if req.Phone != nil {
		provider.Phone = *req.Phone
	}
	if req.Address != nil {
		provider.Address = *req.Address
	}
	if req.Timezone != nil {
		provider.Timezone = *req.Timezone
	}
	if req.RegistrationCode != nil {
		provider.RegistrationCode = *req.RegistrationCode
	}
	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Antecedência mínima deve ser zero ou positiva (em minutos).")
			return
		}
		provider.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.Save(&provider).Error; err != nil {
		httperr.Internal(c, "failed_to_update_provider", "Erro ao salvar os dados do prestador.")
		return
	}

	c.JSON(http.StatusOK, provider)
}

// ======================================================
// AVATAR
// ======================================================

// UploadAvatar normaliza a imagem (redimensiona e converte para WebP)
// antes de subir para o storage.
func (h *ProviderHandler) UploadAvatar(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	var provider models.Provider
	if err := h.db.First(&provider, providerID).Error; err != nil {
		httperr.NotFound(c, "provider_not_found", "Prestador não encontrado.")
		return
	}

	file, _, err := c.Request.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Envie o arquivo no campo 'avatar'.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil || len(data) > maxUploadBytes {
		httperr.BadRequest(c, "file_too_large", "Arquivo acima do limite de 8 MB.")
		return
	}

	normalized, err := media.NormalizeAvatar(data)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Imagem inválida ou formato não suportado.")
		return
	}

	key := fmt.Sprintf("avatars/%d/%d.webp", providerID, time.Now().Unix())
	url, err := h.uploader.Upload(c.Request.Context(), key, normalized, "image/webp")
	if err != nil {
		httperr.Internal(c, "upload_failed", "Erro ao enviar a imagem.")
		return
	}

	provider.AvatarURL = url
	if err := h.db.Save(&provider).Error; err != nil {
		httperr.Internal(c, "failed_to_update_provider", "Erro ao salvar o avatar.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}

// ======================================================
// DOCUMENTS (credenciamento)
// ======================================================

func (h *ProviderHandler) UploadDocument(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	docType := c.PostForm("type")
	if docType == "" {
		docType = "other"
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Envie o arquivo no campo 'file'.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil || len(data) > maxUploadBytes {
		httperr.BadRequest(c, "file_too_large", "Arquivo acima do limite de 8 MB.")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("documents/%d/%d_%s", providerID, time.Now().Unix(), header.Filename)
	url, err := h.uploader.Upload(c.Request.Context(), key, data, contentType)
	if err != nil {
		httperr.Internal(c, "upload_failed", "Erro ao enviar o documento.")
		return
	}

	doc := models.ProviderDocument{
		ProviderID: providerID,
		Type:       docType,
		FileURL:    url,
	}

	if err := h.db.Create(&doc).Error; err != nil {
		httperr.Internal(c, "failed_to_save_document", "Erro ao registrar o documento.")
		return
	}

	c.JSON(http.StatusCreated, doc)
}

func (h *ProviderHandler) ListDocuments(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	var docs []models.ProviderDocument
	if err := h.db.
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Find(&docs).Error; err != nil {

		httperr.Internal(c, "failed_to_list_documents", "Erro ao listar documentos.")
		return
	}

	c.JSON(http.StatusOK, docs)
}
