package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is a contact form submission filed under a topic
type Message struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TopicID uuid.UUID `gorm:"type:uuid;not null;index:idx_message_topic_id" json:"topic_id"`
	Email   string    `gorm:"size:255;not null" json:"email"`
	Text    string    `gorm:"type:text;not null" json:"text"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_message_created_at" json:"created_at"`

	Topic *Topic `gorm:"foreignKey:TopicID;references:ID" json:"-"`
}

// TableName returns the table name for Message
func (Message) TableName() string { return "message" }
