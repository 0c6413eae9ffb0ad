package models

import (
	"time"

	"github.com/google/uuid"
)

// Topic groups contact messages
type Topic struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"size:255;not null" json:"name"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

// TableName returns the table name for Topic
func (Topic) TableName() string { return "topic" }
