package handlers

import (
	"github.com/gin-gonic/gin"

	"goblog/admin"
	"goblog/helper"
)

// AdminHandler renders the generic back-office list screens from the
// declarative entity configs.
type AdminHandler struct {
	lister   *admin.Lister
	registry admin.Registry
	Helper   *helper.HTTPHelper
}

func NewAdminHandler(lister *admin.Lister, registry admin.Registry, h *helper.HTTPHelper) *AdminHandler {
	return &AdminHandler{lister: lister, registry: registry, Helper: h}
}

// ListEntities handles GET /admin/:entity. Filters arrive as query
// parameters named after the entity's declared filter fields, ?q= searches
// the declared search fields, ?page= pages the result.
func (h *AdminHandler) ListEntities(c *gin.Context) {
	entity := c.Param("entity")

	cfg, ok := h.registry.Get(entity)
	if !ok {
		h.Helper.SendNotFoundError(c, "Unknown entity", h.Helper.EmptyJsonMap())
		return
	}

	filters := make(map[string]string, len(cfg.ListFilter))
	for _, field := range cfg.ListFilter {
		filters[field] = c.Query(field)
	}

	rows, page, found, err := h.lister.List(entity, filters, c.Query("q"), c.Query("page"))
	if err != nil {
		h.Helper.SendDatabaseError(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	if !found {
		h.Helper.SendNotFoundError(c, "Unknown entity", h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Success", gin.H{
		"entity":     entity,
		"rows":       rows,
		"pagination": h.Helper.GeneratePaging(c, page),
	})
}
