package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goblog/helper"
	"goblog/services"
)

type FeedHandler struct {
	feedService services.FeedService
	Helper      *helper.HTTPHelper
}

func NewFeedHandler(feedService services.FeedService, h *helper.HTTPHelper) *FeedHandler {
	return &FeedHandler{feedService: feedService, Helper: h}
}

func (h *FeedHandler) RSS(c *gin.Context) {
	rss, err := h.feedService.LatestPostsRSS()
	if err != nil {
		h.Helper.SendDatabaseError(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}

func (h *FeedHandler) Sitemap(c *gin.Context) {
	sitemap, err := h.feedService.Sitemap()
	if err != nil {
		h.Helper.SendDatabaseError(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", sitemap)
}
