package repository

import (
	"context"
	"fmt"

	"github.com/amirphl/linkhub/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TopicRepositoryImpl implements TopicRepository
type TopicRepositoryImpl struct {
	*BaseRepository[models.Topic]
}

func NewTopicRepository(db *gorm.DB) TopicRepository {
	return &TopicRepositoryImpl{BaseRepository: NewBaseRepository[models.Topic](db)}
}

func (r *TopicRepositoryImpl) ByID(ctx context.Context, id uuid.UUID) (*models.Topic, error) {
	row, err := r.first(r.getDB(ctx).Where("id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("failed to find topic %s: %w", id, err)
	}
	return row, nil
}
