package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlogStatus string

const (
	BlogDraft     BlogStatus = "draft"
	BlogPublished BlogStatus = "published"
)

// Toggled returns the other state. Draft and published are the only states.
func (s BlogStatus) Toggled() BlogStatus {
	if s == BlogPublished {
		return BlogDraft
	}
	return BlogPublished
}

type Blog struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	Slug      string     `gorm:"not null;uniqueIndex;size:255" json:"slug"`
	Title     string     `gorm:"not null" json:"title"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	Image     string     `gorm:"not null" json:"image"`
	Category  string     `gorm:"not null;index" json:"category"`
	Featured  bool       `gorm:"not null;default:false" json:"featured"`
	Author    string     `gorm:"not null" json:"author"`
	Tags      []string   `gorm:"type:text;serializer:json" json:"tags"`
	Status    BlogStatus `gorm:"not null;default:draft;index;size:16" json:"status"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Blog) TableName() string {
	return "blogs"
}

func (b *Blog) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = BlogDraft
	}
	return nil
}
