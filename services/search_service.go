package services

import (
	"fmt"
	"strings"

	"goblog/models"
	"goblog/repositories"
)

const (
	SearchModeBasic    = "basic"
	SearchModeRanked   = "ranked"
	SearchModeWeighted = "weighted"
	SearchModeTrigram  = "trigram"
)

// SearchService runs a user query through one of the full-text strategies.
// All strategies see published posts only.
type SearchService interface {
	Search(query, mode string) ([]models.Post, int64, error)
}

type searchService struct {
	postRepo repositories.PostRepository

	// Policy knobs, sourced from configuration.
	rankThreshold   float64
	similarityFloor float64
}

func NewSearchService(postRepo repositories.PostRepository, rankThreshold, similarityFloor float64) SearchService {
	return &searchService{
		postRepo:        postRepo,
		rankThreshold:   rankThreshold,
		similarityFloor: similarityFloor,
	}
}

// Search dispatches to the strategy named by mode. An empty or
// whitespace-only query is not an error, it just matches nothing.
func (s *searchService) Search(query, mode string) ([]models.Post, int64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Post{}, 0, nil
	}

	var posts []models.Post
	var err error

	switch mode {
	case SearchModeBasic:
		posts, err = s.postRepo.SearchBasic(query)
	case SearchModeRanked, "":
		posts, err = s.postRepo.SearchRanked(query)
	case SearchModeWeighted:
		posts, err = s.postRepo.SearchWeighted(query, s.rankThreshold)
	case SearchModeTrigram:
		posts, err = s.postRepo.SearchTrigram(query, s.similarityFloor)
	default:
		return nil, 0, fmt.Errorf("unknown search mode %q", mode)
	}
	if err != nil {
		return nil, 0, err
	}

	return posts, int64(len(posts)), nil
}
