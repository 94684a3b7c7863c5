package services

import (
	"errors"

	"gorm.io/gorm"

	"goblog/models"
	"goblog/repositories"
)

type CommentService interface {
	CreateComment(postID uint, req models.CreateCommentRequest) (*models.Comment, error)
	GetVisibleComments(postID uint) ([]models.Comment, error)
	SetVisibility(commentID uint, visible bool) (*models.Comment, error)
}

type commentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
}

func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// CreateComment attaches a reader submission to a published post. Drafts
// cannot be commented on; to readers they do not exist.
func (s *commentService) CreateComment(postID uint, req models.CreateCommentRequest) (*models.Comment, error) {
	post, err := s.postRepo.GetPublishedByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	comment := &models.Comment{
		PostID:    post.ID,
		Name:      req.Name,
		Email:     req.Email,
		Body:      req.Body,
		IsVisible: true,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *commentService) GetVisibleComments(postID uint) ([]models.Comment, error) {
	return s.commentRepo.GetVisibleByPost(postID)
}

// SetVisibility is the moderation action. Comments are hidden, never
// deleted.
func (s *commentService) SetVisibility(commentID uint, visible bool) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	comment.IsVisible = visible
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}

	return comment, nil
}
