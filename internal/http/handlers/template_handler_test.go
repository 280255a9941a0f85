package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/proposal-builder/internal/models"
	"github.com/ignatzorin/proposal-builder/internal/templates"
)

func newTemplateRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewTemplateHandler()
	r.GET("/templates", handler.ListTemplates)
	r.GET("/templates/:name", handler.GetTemplate)
	return r
}

func TestTemplateHandler_ListTemplates(t *testing.T) {
	r := newTemplateRouter()

	w := doJSON(t, r, "GET", "/templates", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var infos []templates.Info
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &infos))
	assert.NotEmpty(t, infos)
	for _, info := range infos {
		assert.NotEmpty(t, info.Title)
	}
}

func TestTemplateHandler_GetTemplate(t *testing.T) {
	r := newTemplateRouter()

	w := doJSON(t, r, "GET", "/templates/Basic Proposal", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Title   string             `json:"title"`
		Starter models.SectionList `json:"starter"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Basic Proposal", resp.Title)
	assert.NotEmpty(t, resp.Starter)
}

func TestTemplateHandler_GetTemplate_UnknownFallsBack(t *testing.T) {
	r := newTemplateRouter()

	w := doJSON(t, r, "GET", "/templates/unknown", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Title string `json:"title"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Basic Proposal", resp.Title)
}
