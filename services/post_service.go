package services

import (
	"errors"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"goblog/helper"
	"goblog/models"
	"goblog/repositories"
)

const (
	postsPerPage      = 5
	similarPostsLimit = 4
)

// PostDetail is the bundle the detail endpoint renders: the post itself,
// its visible comments and the shared-tag recommendations.
type PostDetail struct {
	Post         *models.Post     `json:"post"`
	Comments     []models.Comment `json:"comments"`
	SimilarPosts []models.Post    `json:"similar_posts"`
}

type PostService interface {
	ListPosts(tagSlug, rawPage string) ([]models.Post, helper.Page, *models.Tag, error)
	GetPostDetail(year, month, day int, postSlug string) (*PostDetail, error)
	GetPublishedPost(id uint) (*models.Post, error)
	SimilarPosts(post *models.Post, limit int) ([]models.Post, error)
	CreatePost(req models.CreatePostRequest, authorID uint) (*models.Post, error)
	UpdatePost(id uint, req models.UpdatePostRequest, userID uint, role models.UserRole) (*models.Post, error)
	DeletePost(id uint, userID uint, role models.UserRole) error
}

type postService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	tagRepo     repositories.TagRepository
}

func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, tagRepo repositories.TagRepository) PostService {
	return &postService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		tagRepo:     tagRepo,
	}
}

// ListPosts returns one page of published posts, newest publication first,
// optionally narrowed to a tag. An unknown tag slug is a not-found, but a
// bad page number never is: it falls back per the pagination policy.
func (s *postService) ListPosts(tagSlug, rawPage string) ([]models.Post, helper.Page, *models.Tag, error) {
	var tag *models.Tag
	var tagID uint

	if tagSlug != "" {
		found, err := s.tagRepo.GetBySlug(tagSlug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, helper.Page{}, nil, models.ErrNotFound
			}
			return nil, helper.Page{}, nil, err
		}
		tag = found
		tagID = found.ID
	}

	total, err := s.postRepo.CountPublished(tagID)
	if err != nil {
		return nil, helper.Page{}, nil, err
	}

	page := helper.Paginate(rawPage, postsPerPage, total)

	posts, err := s.postRepo.ListPublished(tagID, page.Offset(), page.Size)
	if err != nil {
		return nil, helper.Page{}, nil, err
	}

	return posts, page, tag, nil
}

func (s *postService) GetPostDetail(year, month, day int, postSlug string) (*PostDetail, error) {
	post, err := s.postRepo.GetPublishedBySlugAndDate(year, month, day, postSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	comments, err := s.commentRepo.GetVisibleByPost(post.ID)
	if err != nil {
		return nil, err
	}

	similar, err := s.SimilarPosts(post, similarPostsLimit)
	if err != nil {
		return nil, err
	}

	return &PostDetail{Post: post, Comments: comments, SimilarPosts: similar}, nil
}

func (s *postService) GetPublishedPost(id uint) (*models.Post, error) {
	post, err := s.postRepo.GetPublishedByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *postService) SimilarPosts(post *models.Post, limit int) ([]models.Post, error) {
	if limit <= 0 {
		limit = similarPostsLimit
	}
	return s.postRepo.SimilarPosts(post, limit)
}

func (s *postService) CreatePost(req models.CreatePostRequest, authorID uint) (*models.Post, error) {
	pubDate := time.Now().UTC()
	if req.PublicationDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.PublicationDate)
		if err != nil {
			return nil, errors.New("publication_date must be RFC 3339")
		}
		pubDate = parsed.UTC()
	}

	postSlug := req.Slug
	if postSlug == "" {
		postSlug = slug.Make(req.Title)
	}

	taken, err := s.postRepo.SlugExistsOnDate(postSlug, pubDate, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.ErrSlugTaken
	}

	tags, err := s.processTags(req.Tags)
	if err != nil {
		return nil, err
	}

	status := models.StatusDraft
	if req.Status != "" {
		status = models.PostStatus(req.Status)
	}

	post := &models.Post{
		Title:           req.Title,
		Slug:            postSlug,
		AuthorID:        authorID,
		Body:            req.Body,
		PublicationDate: pubDate,
		Status:          status,
		Tags:            tags,
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(post.ID)
}

func (s *postService) UpdatePost(id uint, req models.UpdatePostRequest, userID uint, role models.UserRole) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	if !canEdit(post, userID, role) {
		return nil, models.ErrUnauthorized
	}

	tags, err := s.processTags(req.Tags)
	if err != nil {
		return nil, err
	}

	post.Title = req.Title
	post.Body = req.Body
	post.Tags = tags
	if req.Status != "" {
		post.Status = models.PostStatus(req.Status)
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(post.ID)
}

func (s *postService) DeletePost(id uint, userID uint, role models.UserRole) error {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound
		}
		return err
	}

	if !canEdit(post, userID, role) {
		return models.ErrUnauthorized
	}

	return s.postRepo.Delete(id)
}

// canEdit lets the author touch their own posts, editors and admins any.
func canEdit(post *models.Post, userID uint, role models.UserRole) bool {
	return post.AuthorID == userID || role == models.RoleEditor || role == models.RoleAdmin
}

func (s *postService) processTags(tagNames []string) ([]models.Tag, error) {
	var tags []models.Tag

	for _, name := range tagNames {
		tag, err := s.tagRepo.GetByName(name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				newTag := &models.Tag{
					Name: name,
					Slug: slug.Make(name),
				}
				if err := s.tagRepo.Create(newTag); err != nil {
					return nil, err
				}
				tags = append(tags, *newTag)
			} else {
				return nil, err
			}
		} else {
			tags = append(tags, *tag)
		}
	}

	return tags, nil
}
