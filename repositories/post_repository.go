package repositories

import (
	"time"

	"gorm.io/gorm"

	"goblog/models"
)

// published is the query scope composed into every public read path. Only
// posts that made it out of draft are ever visible to readers.
func published(db *gorm.DB) *gorm.DB {
	return db.Where("posts.status = ?", models.StatusPublished)
}

type PostRepository interface {
	Create(post *models.Post) error
	Update(post *models.Post) error
	Delete(id uint) error
	GetByID(id uint) (*models.Post, error)
	GetPublishedByID(id uint) (*models.Post, error)
	GetPublishedBySlugAndDate(year, month, day int, slug string) (*models.Post, error)
	ListPublished(tagID uint, offset, limit int) ([]models.Post, error)
	CountPublished(tagID uint) (int64, error)
	AllPublished() ([]models.Post, error)
	LatestPublished(limit int) ([]models.Post, error)
	MostCommented(limit int) ([]models.Post, error)
	SimilarPosts(post *models.Post, limit int) ([]models.Post, error)
	SlugExistsOnDate(slug string, date time.Time, excludeID uint) (bool, error)
	SearchBasic(query string) ([]models.Post, error)
	SearchRanked(query string) ([]models.Post, error)
	SearchWeighted(query string, threshold float64) ([]models.Post, error)
	SearchTrigram(query string, floor float64) ([]models.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) Update(post *models.Post) error {
	if err := r.db.Save(post).Error; err != nil {
		return err
	}
	// Save does not touch many2many rows; replace them explicitly.
	return r.db.Model(post).Association("Tags").Replace(post.Tags)
}

func (r *postRepository) Delete(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}

func (r *postRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Author").Preload("Tags").First(&post, id).Error
	return &post, err
}

func (r *postRepository) GetPublishedByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.Scopes(published).Preload("Author").Preload("Tags").
		First(&post, id).Error
	return &post, err
}

// GetPublishedBySlugAndDate resolves the composite detail key. The slug is
// only unique within the date portion of the publication timestamp, so the
// lookup bounds the timestamp to that day.
func (r *postRepository) GetPublishedBySlugAndDate(year, month, day int, slug string) (*models.Post, error) {
	start := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	var post models.Post
	err := r.db.Scopes(published).Preload("Author").Preload("Tags").
		Where("slug = ? AND publication_date >= ? AND publication_date < ?", slug, start, end).
		First(&post).Error
	return &post, err
}

func (r *postRepository) listQuery(tagID uint) *gorm.DB {
	query := r.db.Model(&models.Post{}).Scopes(published)
	if tagID > 0 {
		query = query.Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Where("post_tags.tag_id = ?", tagID)
	}
	return query
}

func (r *postRepository) ListPublished(tagID uint, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.listQuery(tagID).
		Preload("Author").Preload("Tags").
		Order("posts.publication_date DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) CountPublished(tagID uint) (int64, error) {
	var total int64
	err := r.listQuery(tagID).Count(&total).Error
	return total, err
}

func (r *postRepository) AllPublished() ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Scopes(published).
		Order("posts.publication_date DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) LatestPublished(limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Scopes(published).
		Order("posts.publication_date DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) MostCommented(limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Model(&models.Post{}).Scopes(published).
		Select("posts.*, COUNT(comments.id) AS comment_count").
		Joins("LEFT JOIN comments ON comments.post_id = posts.id AND comments.is_visible = ?", true).
		Group("posts.id").
		Order("COUNT(comments.id) DESC, posts.publication_date DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// SimilarPosts ranks other published posts by how many tags they share with
// the given one. Publication date breaks ties so the ordering stays stable
// when overlap counts are equal.
func (r *postRepository) SimilarPosts(post *models.Post, limit int) ([]models.Post, error) {
	if len(post.Tags) == 0 {
		return []models.Post{}, nil
	}

	tagIDs := make([]uint, 0, len(post.Tags))
	for _, tag := range post.Tags {
		tagIDs = append(tagIDs, tag.ID)
	}

	var posts []models.Post
	err := r.db.Model(&models.Post{}).Scopes(published).
		Select("posts.*, COUNT(DISTINCT post_tags.tag_id) AS same_tags").
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id IN ?", tagIDs).
		Where("posts.id <> ?", post.ID).
		Group("posts.id").
		Order("same_tags DESC, posts.publication_date DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) SlugExistsOnDate(slug string, date time.Time, excludeID uint) (bool, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	var count int64
	err := r.db.Model(&models.Post{}).
		Where("slug = ? AND publication_date >= ? AND publication_date < ?", slug, start, end).
		Where("id <> ?", excludeID).
		Count(&count).Error
	return count > 0, err
}

const searchVector = `to_tsvector('english', title || ' ' || body)`

const weightedVector = `setweight(to_tsvector('english', title), 'A') || setweight(to_tsvector('english', body), 'B')`

// SearchBasic matches the query terms against the combined title and body
// vector with no ordering beyond what the index gives back.
func (r *postRepository) SearchBasic(query string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Scopes(published).
		Where(searchVector+` @@ plainto_tsquery('english', ?)`, query).
		Find(&posts).Error
	return posts, err
}

// SearchRanked orders matches by the native ts_rank relevance score.
func (r *postRepository) SearchRanked(query string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Model(&models.Post{}).Scopes(published).
		Select(`posts.*, ts_rank(`+searchVector+`, plainto_tsquery('english', ?)) AS rank`, query).
		Where(searchVector+` @@ plainto_tsquery('english', ?)`, query).
		Order("rank DESC").
		Find(&posts).Error
	return posts, err
}

// SearchWeighted gives title terms a higher weight than body terms and
// drops anything below the rank threshold, so body-only matches cannot
// dilute the results.
func (r *postRepository) SearchWeighted(query string, threshold float64) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Model(&models.Post{}).Scopes(published).
		Select(`posts.*, ts_rank(`+weightedVector+`, plainto_tsquery('english', ?)) AS rank`, query).
		Where(weightedVector+` @@ plainto_tsquery('english', ?)`, query).
		Where(`ts_rank(`+weightedVector+`, plainto_tsquery('english', ?)) >= ?`, query, threshold).
		Order("rank DESC").
		Find(&posts).Error
	return posts, err
}

// SearchTrigram compares the query against titles with pg_trgm similarity,
// which tolerates typos that token matching cannot.
func (r *postRepository) SearchTrigram(query string, floor float64) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Model(&models.Post{}).Scopes(published).
		Select(`posts.*, similarity(title, ?) AS similarity`, query).
		Where(`similarity(title, ?) > ?`, query, floor).
		Order("similarity DESC").
		Find(&posts).Error
	return posts, err
}
