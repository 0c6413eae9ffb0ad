package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateTopicRequest is the body of POST /contact/topics
type CreateTopicRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// CreateTopicResponse returns the generated topic id
type CreateTopicResponse struct {
	ID uuid.UUID `json:"id"`
}

// CreateMessageRequest is the body of POST /contact/messages
type CreateMessageRequest struct {
	Email   string `json:"email" validate:"required,email,max=255"`
	Text    string `json:"text" validate:"required"`
	TopicID string `json:"topic_id" validate:"required,uuid"`
}

// MessageDTO is one message in a topic listing
type MessageDTO struct {
	ID        uuid.UUID `json:"id"`
	TopicID   uuid.UUID `json:"topic_id"`
	Email     string    `json:"email"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
