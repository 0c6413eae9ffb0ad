package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirphl/linkhub/models"
	"gorm.io/gorm"
)

// LandingPageRepositoryImpl implements LandingPageRepository
type LandingPageRepositoryImpl struct {
	*BaseRepository[models.LandingPage]
}

func NewLandingPageRepository(db *gorm.DB) LandingPageRepository {
	return &LandingPageRepositoryImpl{BaseRepository: NewBaseRepository[models.LandingPage](db)}
}

func (r *LandingPageRepositoryImpl) Save(ctx context.Context, page *models.LandingPage) error {
	err := r.BaseRepository.Save(ctx, page)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicatePath
	}
	return err
}

func (r *LandingPageRepositoryImpl) ByPath(ctx context.Context, path string) (*models.LandingPage, error) {
	row, err := r.first(r.getDB(ctx).Where("path = ?", path))
	if err != nil {
		return nil, fmt.Errorf("failed to find landing page %s: %w", path, err)
	}
	return row, nil
}
