package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"goblog/models"
	"goblog/repositories"
)

const widgetCacheTTL = 5 * time.Minute

// WidgetService backs the sidebar fragments: total post count, latest
// posts and most-commented posts. Reads go through redis when a client is
// configured and fall straight through to the store otherwise.
type WidgetService interface {
	TotalPosts(ctx context.Context) (int64, error)
	LatestPosts(ctx context.Context, limit int) ([]models.Post, error)
	MostCommentedPosts(ctx context.Context, limit int) ([]models.Post, error)
}

type widgetService struct {
	postRepo repositories.PostRepository
	cache    *redis.Client
	logger   *zap.Logger
}

func NewWidgetService(postRepo repositories.PostRepository, cache *redis.Client, logger *zap.Logger) WidgetService {
	return &widgetService{
		postRepo: postRepo,
		cache:    cache,
		logger:   logger,
	}
}

func (s *widgetService) TotalPosts(ctx context.Context) (int64, error) {
	const key = "widgets:total_posts"

	if s.cache != nil {
		if n, err := s.cache.Get(ctx, key).Int64(); err == nil {
			return n, nil
		}
	}

	total, err := s.postRepo.CountPublished(0)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, total, widgetCacheTTL).Err(); err != nil {
			s.logger.Warn("widget cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return total, nil
}

func (s *widgetService) LatestPosts(ctx context.Context, limit int) ([]models.Post, error) {
	key := fmt.Sprintf("widgets:latest:%d", limit)
	return s.cachedPosts(ctx, key, func() ([]models.Post, error) {
		return s.postRepo.LatestPublished(limit)
	})
}

func (s *widgetService) MostCommentedPosts(ctx context.Context, limit int) ([]models.Post, error) {
	key := fmt.Sprintf("widgets:most_commented:%d", limit)
	return s.cachedPosts(ctx, key, func() ([]models.Post, error) {
		return s.postRepo.MostCommented(limit)
	})
}

func (s *widgetService) cachedPosts(ctx context.Context, key string, load func() ([]models.Post, error)) ([]models.Post, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var posts []models.Post
			if uErr := json.Unmarshal(data, &posts); uErr == nil {
				return posts, nil
			}
		}
	}

	posts, err := load()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(posts); err == nil {
			if err := s.cache.Set(ctx, key, payload, widgetCacheTTL).Err(); err != nil {
				s.logger.Warn("widget cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return posts, nil
}
