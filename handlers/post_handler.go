package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"goblog/helper"
	"goblog/models"
	"goblog/services"
)

type PostHandler struct {
	postService services.PostService
	Helper      *helper.HTTPHelper
}

func NewPostHandler(postService services.PostService, h *helper.HTTPHelper) *PostHandler {
	return &PostHandler{postService: postService, Helper: h}
}

// ListPosts serves the public listing: published posts, newest first,
// optionally filtered by ?tag=<slug>, paged by ?page=.
func (h *PostHandler) ListPosts(c *gin.Context) {
	var params models.PostListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	posts, page, tag, err := h.postService.ListPosts(params.Tag, params.Page)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.Helper.SendNotFoundError(c, "Tag not found", h.Helper.EmptyJsonMap())
			return
		}
		h.Helper.SendDatabaseError(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	data := gin.H{
		"posts":      posts,
		"pagination": h.Helper.GeneratePaging(c, page),
	}
	if tag != nil {
		data["tag"] = tag
	}

	h.Helper.SendSuccess(c, "Success", data)
}

// GetPostDetail resolves the composite (year, month, day, slug) key to
// exactly one published post, bundled with its visible comments and the
// similar-post recommendations.
func (h *PostHandler) GetPostDetail(c *gin.Context) {
	year, errY := strconv.Atoi(c.Param("year"))
	month, errM := strconv.Atoi(c.Param("month"))
	day, errD := strconv.Atoi(c.Param("day"))
	if errY != nil || errM != nil || errD != nil {
		h.Helper.SendBadRequest(c, "Invalid date in URL", h.Helper.EmptyJsonMap())
		return
	}

	detail, err := h.postService.GetPostDetail(year, month, day, c.Param("slug"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.Helper.SendNotFoundError(c, "Post not found", h.Helper.EmptyJsonMap())
			return
		}
		h.Helper.SendDatabaseError(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Success", detail)
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	if !h.Helper.ValidateStruct(c, req) {
		return
	}

	post, err := h.postService.CreatePost(req, userID.(uint))
	if err != nil {
		if errors.Is(err, models.ErrSlugTaken) {
			h.Helper.SendBadRequest(c, err.Error(), gin.H{"slug": []string{err.Error()}})
			return
		}
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID, _ := c.Get("user_id")
	role, _ := c.Get("role")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid post ID", h.Helper.EmptyJsonMap())
		return
	}

	var req models.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	if !h.Helper.ValidateStruct(c, req) {
		return
	}

	post, err := h.postService.UpdatePost(uint(id), req, userID.(uint), models.UserRole(role.(string)))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			h.Helper.SendNotFoundError(c, "Post not found", h.Helper.EmptyJsonMap())
		case errors.Is(err, models.ErrUnauthorized):
			h.Helper.SendUnauthorizedError(c, "Not allowed to edit this post", h.Helper.EmptyJsonMap())
		default:
			h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		}
		return
	}

	h.Helper.SendSuccess(c, "Post updated successfully", post)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, _ := c.Get("user_id")
	role, _ := c.Get("role")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid post ID", h.Helper.EmptyJsonMap())
		return
	}

	if err := h.postService.DeletePost(uint(id), userID.(uint), models.UserRole(role.(string))); err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			h.Helper.SendNotFoundError(c, "Post not found", h.Helper.EmptyJsonMap())
		case errors.Is(err, models.ErrUnauthorized):
			h.Helper.SendUnauthorizedError(c, "Not allowed to delete this post", h.Helper.EmptyJsonMap())
		default:
			h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		}
		return
	}

	h.Helper.SendSuccess(c, "Post deleted successfully", h.Helper.EmptyJsonMap())
}
