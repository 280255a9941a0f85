package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/proposal-builder/internal/templates"
)

// TemplateHandler отдаёт каталог стартовых шаблонов.
type TemplateHandler struct{}

// NewTemplateHandler создаёт хэндлер.
func NewTemplateHandler() *TemplateHandler {
	return &TemplateHandler{}
}

// ListTemplates обрабатывает GET /templates.
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, templates.Names())
}

// GetTemplate обрабатывает GET /templates/:name.
// Неизвестное название не считается ошибкой: возвращается базовый шаблон.
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	tpl := templates.ByName(c.Param("name"))
	c.JSON(http.StatusOK, gin.H{
		"title":       tpl.Title,
		"description": tpl.Description,
		"sections":    tpl.Sections,
		"starter":     templates.Materialize(tpl),
	})
}
