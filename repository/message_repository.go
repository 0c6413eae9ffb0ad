package repository

import (
	"context"
	"fmt"

	"github.com/amirphl/linkhub/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageRepositoryImpl implements MessageRepository
type MessageRepositoryImpl struct {
	*BaseRepository[models.Message]
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &MessageRepositoryImpl{BaseRepository: NewBaseRepository[models.Message](db)}
}

// ListByTopic returns the messages of a topic, oldest first
func (r *MessageRepositoryImpl) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]*models.Message, error) {
	var rows []*models.Message
	err := r.getDB(ctx).
		Where("topic_id = ?", topicID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages for topic %s: %w", topicID, err)
	}
	return rows, nil
}
