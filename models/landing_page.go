package models

import "time"

// LandingPage is a raw HTML document served by path
type LandingPage struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Path string `gorm:"size:255;not null;uniqueIndex:uk_landing_page_path" json:"path"`
	HTML []byte `gorm:"type:bytea;not null" json:"-"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

// TableName returns the table name for LandingPage
func (LandingPage) TableName() string { return "landing_page" }
