package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirphl/linkhub/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ShortLinkRepositoryImpl implements ShortLinkRepository
type ShortLinkRepositoryImpl struct {
	*BaseRepository[models.ShortLink]
}

func NewShortLinkRepository(db *gorm.DB) ShortLinkRepository {
	return &ShortLinkRepositoryImpl{BaseRepository: NewBaseRepository[models.ShortLink](db)}
}

func (r *ShortLinkRepositoryImpl) ExistsByShortKey(ctx context.Context, shortKey string) (bool, error) {
	var exists bool
	err := r.getDB(ctx).
		Raw("SELECT EXISTS(SELECT 1 FROM short_link WHERE short_key = ?)", shortKey).
		Scan(&exists).Error
	if err != nil {
		return false, fmt.Errorf("failed to check short key: %w", err)
	}
	return exists, nil
}

// Insert stores link in a single statement. A row rejected by the unique
// constraint on short_key yields ErrDuplicateShortKey.
func (r *ShortLinkRepositoryImpl) Insert(ctx context.Context, link *models.ShortLink) error {
	result := r.getDB(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "short_key"}}, DoNothing: true}).
		Create(link)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateShortKey
		}
		return fmt.Errorf("failed to insert short link: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDuplicateShortKey
	}
	return nil
}

func (r *ShortLinkRepositoryImpl) ByShortKey(ctx context.Context, shortKey string) (*models.ShortLink, error) {
	row, err := r.first(r.getDB(ctx).Where("short_key = ?", shortKey))
	if err != nil {
		return nil, fmt.Errorf("failed to find short link %s: %w", shortKey, err)
	}
	return row, nil
}

// IncrementClicks bumps the counter with clicks = clicks + 1 so concurrent
// redirects never lose updates
func (r *ShortLinkRepositoryImpl) IncrementClicks(ctx context.Context, shortKey string) error {
	result := r.getDB(ctx).
		Model(&models.ShortLink{}).
		Where("short_key = ?", shortKey).
		UpdateColumn("clicks", gorm.Expr("clicks + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to increment clicks for %s: %w", shortKey, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
