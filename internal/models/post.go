// Package models contains the domain entities and API contracts.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is the single blog entry entity. JSON field names follow the public
// wire format consumed by the web client.
type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"not null" json:"title"`
	Content   PostContent    `gorm:"not null" json:"content"`
	ImageURL  string         `json:"imageUrl"`
	Likes     int            `gorm:"default:0" json:"likes"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
