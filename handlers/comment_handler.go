package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"goblog/helper"
	"goblog/models"
	"goblog/services"
)

type CommentHandler struct {
	commentService services.CommentService
	Helper         *helper.HTTPHelper
}

func NewCommentHandler(commentService services.CommentService, h *helper.HTTPHelper) *CommentHandler {
	return &CommentHandler{commentService: commentService, Helper: h}
}

// CreateComment takes a reader submission for a published post. Validation
// failures come back as field-level errors and nothing is stored.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid post ID", h.Helper.EmptyJsonMap())
		return
	}

	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	if !h.Helper.ValidateStruct(c, req) {
		return
	}

	comment, err := h.commentService.CreateComment(uint(postID), req)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.Helper.SendNotFoundError(c, "Post not found", h.Helper.EmptyJsonMap())
			return
		}
		h.Helper.SendDatabaseError(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Comment added successfully", comment)
}

// SetVisibility is the moderation endpoint: hides or restores a comment.
func (h *CommentHandler) SetVisibility(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid comment ID", h.Helper.EmptyJsonMap())
		return
	}

	var req struct {
		IsVisible *bool `json:"is_visible" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.IsVisible == nil {
		h.Helper.SendBadRequest(c, "is_visible is required", h.Helper.EmptyJsonMap())
		return
	}

	comment, err := h.commentService.SetVisibility(uint(commentID), *req.IsVisible)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.Helper.SendNotFoundError(c, "Comment not found", h.Helper.EmptyJsonMap())
			return
		}
		h.Helper.SendDatabaseError(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Comment visibility updated", comment)
}
