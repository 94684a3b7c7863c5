package models

import "time"

type Comment struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	PostID    uint      `json:"post_id" gorm:"not null;index"`
	Post      *Post     `json:"post,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Name      string    `json:"name" gorm:"size:80;not null"`
	Email     string    `json:"email" gorm:"not null"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	IsVisible bool      `json:"is_visible" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}
