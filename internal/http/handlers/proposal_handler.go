package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/proposal-builder/internal/dto"
	"github.com/ignatzorin/proposal-builder/internal/http/handlers/common"
	"github.com/ignatzorin/proposal-builder/internal/models"
	"github.com/ignatzorin/proposal-builder/internal/pkg/apperror"
	"github.com/ignatzorin/proposal-builder/internal/service"
	"github.com/ignatzorin/proposal-builder/internal/ws"
)

// ProposalHandler обслуживает CRUD маршруты предложений.
type ProposalHandler struct {
	proposals *service.ProposalService
	hub       *ws.Hub
}

// NewProposalHandler создаёт новый хэндлер.
func NewProposalHandler(proposals *service.ProposalService, hub *ws.Hub) *ProposalHandler {
	return &ProposalHandler{proposals: proposals, hub: hub}
}

// ListProposals обрабатывает GET /proposals.
func (h *ProposalHandler) ListProposals(c *gin.Context) {
	proposals, err := h.proposals.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось получить список предложений"})
		return
	}

	if proposals == nil {
		proposals = []models.Proposal{}
	}
	c.JSON(http.StatusOK, proposals)
}

// CreateProposal обрабатывает POST /proposals.
// Автор документа всегда берётся из access токена, а не из тела запроса.
func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req dto.CreateProposalRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposal, err := h.proposals.Create(c.Request.Context(), service.CreateProposalInput{
		Title:       req.Title,
		Description: req.Description,
		Sections:    req.Sections,
		Settings:    req.Settings,
		Client:      req.Client,
		ExpiryDate:  req.ExpiryDate,
		TotalValue:  req.TotalValue,
		Template:    req.Template,
		CreatedBy:   userID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.notify(proposal, "proposals.created")
	c.JSON(http.StatusCreated, proposal)
}

// GetProposal обрабатывает GET /proposals/:id.
func (h *ProposalHandler) GetProposal(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный идентификатор предложения"})
		return
	}

	proposal, err := h.proposals.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, proposal)
}

// UpdateProposal обрабатывает PUT /proposals/:id.
// Семантика частичного обновления: поля, отсутствующие в теле,
// сохраняют текущее значение документа.
func (h *ProposalHandler) UpdateProposal(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный идентификатор предложения"})
		return
	}

	var req dto.UpdateProposalRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposal, err := h.proposals.Update(c.Request.Context(), id, service.UpdateProposalInput{
		Title:       req.Title,
		Description: req.Description,
		Sections:    req.Sections,
		Settings:    req.Settings,
		Client:      req.Client,
		Status:      req.Status,
		ExpiryDate:  req.ExpiryDate,
		TotalValue:  req.TotalValue,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.notify(proposal, "proposals.updated")
	c.JSON(http.StatusOK, proposal)
}

// UpdateSection обрабатывает PUT /proposals/:id/sections/:sectionId.
func (h *ProposalHandler) UpdateSection(c *gin.Context) {
	proposalID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный идентификатор предложения"})
		return
	}
	sectionID, err := common.ParseUUIDParam(c, "sectionId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный идентификатор раздела"})
		return
	}

	var req dto.UpdateSectionRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposal, err := h.proposals.UpdateSection(c.Request.Context(), proposalID, sectionID, models.Section{
		Title:    req.Title,
		Order:    req.Order,
		Elements: req.Elements,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.notify(proposal, "proposals.updated")
	c.JSON(http.StatusOK, proposal)
}

// UpdateElement обрабатывает PUT /proposals/:id/sections/:sectionId/elements/:elementId.
// Совпасть должны все три идентификатора, иначе вернётся 404.
func (h *ProposalHandler) UpdateElement(c *gin.Context) {
	proposalID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный идентификатор предложения"})
		return
	}
	sectionID, err := common.ParseUUIDParam(c, "sectionId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный идентификатор раздела"})
		return
	}
	elementID, err := common.ParseUUIDParam(c, "elementId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный идентификатор блока"})
		return
	}

	var req dto.UpdateElementRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposal, err := h.proposals.UpdateElement(c.Request.Context(), proposalID, sectionID, elementID, models.Element{
		Type:     req.Type,
		Content:  req.Content,
		Position: req.Position,
		Style:    req.Style,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.notify(proposal, "proposals.updated")
	c.JSON(http.StatusOK, proposal)
}

// DeleteProposal обрабатывает DELETE /proposals/:id.
// Удаление идемпотентно: повторный запрос так же возвращает 200.
func (h *ProposalHandler) DeleteProposal(c *gin.Context) {
	userID, _ := common.CurrentUserID(c)

	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный идентификатор предложения"})
		return
	}

	if err := h.proposals.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось удалить предложение"})
		return
	}

	if h.hub != nil && userID != uuid.Nil {
		_ = h.hub.BroadcastToUser(userID, "proposals.deleted", gin.H{"id": id})
	}

	c.JSON(http.StatusOK, gin.H{"message": "предложение удалено"})
}

// notify отправляет событие автору документа через WebSocket.
func (h *ProposalHandler) notify(proposal *models.Proposal, event string) {
	if h.hub == nil || proposal == nil {
		return
	}
	_ = h.hub.BroadcastToUser(proposal.Metadata.CreatedBy, event, proposal)
}

// respondError транслирует ошибку сервисного слоя в HTTP статус.
func (h *ProposalHandler) respondError(c *gin.Context, err error) {
	switch {
	case apperror.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage(err)})
	case apperror.IsValidation(err):
		var appErr *apperror.AppError
		errors.As(err, &appErr)
		c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка сервера"})
	}
}

// notFoundMessage возвращает сообщение NotFound ошибки.
func notFoundMessage(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "не найдено"
}
