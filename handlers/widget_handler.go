package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"goblog/helper"
	"goblog/services"
)

const defaultWidgetLimit = 5

// WidgetHandler serves the reusable view fragments the presentation layer
// embeds: total post count, latest posts, most-commented posts.
type WidgetHandler struct {
	widgetService services.WidgetService
	Helper        *helper.HTTPHelper
}

func NewWidgetHandler(widgetService services.WidgetService, h *helper.HTTPHelper) *WidgetHandler {
	return &WidgetHandler{widgetService: widgetService, Helper: h}
}

func (h *WidgetHandler) TotalPosts(c *gin.Context) {
	total, err := h.widgetService.TotalPosts(c.Request.Context())
	if err != nil {
		h.Helper.SendDatabaseError(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Success", gin.H{"total_posts": total})
}

func (h *WidgetHandler) LatestPosts(c *gin.Context) {
	posts, err := h.widgetService.LatestPosts(c.Request.Context(), h.limit(c))
	if err != nil {
		h.Helper.SendDatabaseError(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Success", gin.H{"posts": posts})
}

func (h *WidgetHandler) MostCommentedPosts(c *gin.Context) {
	posts, err := h.widgetService.MostCommentedPosts(c.Request.Context(), h.limit(c))
	if err != nil {
		h.Helper.SendDatabaseError(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Success", gin.H{"posts": posts})
}

func (h *WidgetHandler) limit(c *gin.Context) int {
	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n > 0 && n <= 20 {
		return n
	}
	return defaultWidgetLimit
}
