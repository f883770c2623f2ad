package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/promoforge/api/internal/catalog"
	"github.com/promoforge/api/internal/model"
	"github.com/promoforge/api/pkg/response"
)

type TemplatesHandler struct {
	catalog *catalog.Catalog
}

func NewTemplatesHandler(cat *catalog.Catalog) *TemplatesHandler {
	return &TemplatesHandler{catalog: cat}
}

// List handles GET /api/templates
// Supports optional category and style filters.
func (h *TemplatesHandler) List(c *fiber.Ctx) error {
	templates := make([]*model.SceneTemplate, 0, len(h.catalog.Templates))
	if category := c.Query("category"); category != "" {
		templates = h.catalog.ByCategory(model.Category(category))
	} else {
		for i := range h.catalog.Templates {
			templates = append(templates, &h.catalog.Templates[i])
		}
	}
	if style := c.Query("style"); style != "" {
		filtered := make([]*model.SceneTemplate, 0, len(templates))
		for _, t := range templates {
			if t.VisualStyle == model.VisualStyle(style) {
				filtered = append(filtered, t)
			}
		}
		templates = filtered
	}

	summaries := make([]model.TemplateSummary, 0, len(templates))
	for _, t := range templates {
		summaries = append(summaries, t.Summary())
	}

	return response.OK(c, fiber.Map{
		"templates":   summaries,
		"transitions": h.catalog.Transitions,
		"audio":       h.catalog.Audio,
	})
}

// Get handles GET /api/templates/:id
func (h *TemplatesHandler) Get(c *fiber.Ctx) error {
	tmpl := h.catalog.ByID(c.Params("id"))
	if tmpl == nil {
		return response.NotFound(c, "Template not found")
	}
	return response.OK(c, tmpl)
}
