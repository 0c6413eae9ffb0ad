// Package models contains the gorm models persisted by the repository layer
package models

import "time"

// ShortLink maps a short key to its destination URL. Token authorizes stats
// access and is never exposed on the redirect path. Clicks only grows.
type ShortLink struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ShortKey string `gorm:"size:16;not null;uniqueIndex:uk_short_link_short_key" json:"short_key"`
	URL      string `gorm:"type:text;not null" json:"url"`
	Token    string `gorm:"size:64;not null" json:"token"`
	Clicks   int    `gorm:"not null;default:0" json:"clicks"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

// TableName returns the table name for ShortLink
func (ShortLink) TableName() string { return "short_link" }
