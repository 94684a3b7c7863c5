package models

import (
	"fmt"
	"time"
)

type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

type Post struct {
	ID              uint       `json:"id" gorm:"primarykey"`
	Title           string     `json:"title" gorm:"size:250;not null"`
	Slug            string     `json:"slug" gorm:"size:250;not null;index:idx_posts_slug_pubdate"`
	AuthorID        uint       `json:"author_id" gorm:"not null"`
	Author          User       `json:"author" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Body            string     `json:"body" gorm:"type:text"`
	PublicationDate time.Time  `json:"publication_date" gorm:"index:idx_posts_pubdate,sort:desc;index:idx_posts_slug_pubdate"`
	Status          PostStatus `json:"status" gorm:"size:20;default:'draft';index"`
	Tags            []Tag      `json:"tags" gorm:"many2many:post_tags;"`
	Comments        []Comment  `json:"comments,omitempty" gorm:"foreignKey:PostID"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Populated by search queries, never stored.
	Rank         float64 `json:"rank,omitempty" gorm:"->;-:migration"`
	Similarity   float64 `json:"similarity,omitempty" gorm:"->;-:migration"`
	SameTags     int64   `json:"same_tags,omitempty" gorm:"->;-:migration"`
	CommentCount int64   `json:"comment_count,omitempty" gorm:"->;-:migration"`
}

// URL returns the canonical detail path for the post. The slug is only
// unique within its publication date, so the date is part of the key.
func (p *Post) URL() string {
	d := p.PublicationDate
	return fmt.Sprintf("/blog/posts/%d/%d/%d/%s", d.Year(), int(d.Month()), d.Day(), p.Slug)
}
