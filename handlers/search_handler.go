package handlers

import (
	"github.com/gin-gonic/gin"

	"goblog/helper"
	"goblog/models"
	"goblog/services"
)

type SearchHandler struct {
	searchService services.SearchService
	Helper        *helper.HTTPHelper
}

func NewSearchHandler(searchService services.SearchService, h *helper.HTTPHelper) *SearchHandler {
	return &SearchHandler{searchService: searchService, Helper: h}
}

// Search runs the full-text query. ?mode= picks the strategy
// (basic|ranked|weighted|trigram), defaulting to ranked. An empty query is
// an empty result, never an error.
func (h *SearchHandler) Search(c *gin.Context) {
	var params models.SearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	posts, total, err := h.searchService.Search(params.Query, params.Mode)
	if err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Success", gin.H{
		"query": params.Query,
		"mode":  params.Mode,
		"posts": posts,
		"total": total,
	})
}
