package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"goblog/helper"
	"goblog/models"
	"goblog/services"
)

type ShareHandler struct {
	postService  services.PostService
	shareService services.ShareService
	Helper       *helper.HTTPHelper
}

func NewShareHandler(postService services.PostService, shareService services.ShareService, h *helper.HTTPHelper) *ShareHandler {
	return &ShareHandler{postService: postService, shareService: shareService, Helper: h}
}

// SharePost emails a recommendation for a published post. Validation
// failures never reach the mail transport; transport failures come back as
// a delivery error, not a validation one.
func (h *ShareHandler) SharePost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid post ID", h.Helper.EmptyJsonMap())
		return
	}

	var req models.SharePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	if !h.Helper.ValidateStruct(c, req) {
		return
	}

	post, err := h.postService.GetPublishedPost(uint(postID))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.Helper.SendNotFoundError(c, "Post not found", h.Helper.EmptyJsonMap())
			return
		}
		h.Helper.SendDatabaseError(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	if err := h.shareService.SendShareEmail(post, req); err != nil {
		h.Helper.SendDeliveryError(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Post shared successfully", gin.H{"sent": true})
}
