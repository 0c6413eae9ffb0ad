// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"errors"

	"github.com/amirphl/linkhub/models"
	"github.com/google/uuid"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

var (
	// ErrDuplicateShortKey is returned by Insert when the unique constraint on short_key rejects the row
	ErrDuplicateShortKey = errors.New("short key already exists")
	// ErrDuplicatePath is returned when a landing page path is already taken
	ErrDuplicatePath = errors.New("landing page path already exists")
	// ErrNoRowsAffected is returned by updates that matched nothing
	ErrNoRowsAffected = errors.New("no rows affected")
)

type Repository[T any] interface {
	Save(ctx context.Context, entity *T) error
}

// ShortLinkRepository is the link store: key uniqueness is enforced by the schema
type ShortLinkRepository interface {
	ExistsByShortKey(ctx context.Context, shortKey string) (bool, error)
	Insert(ctx context.Context, link *models.ShortLink) error
	ByShortKey(ctx context.Context, shortKey string) (*models.ShortLink, error)
	IncrementClicks(ctx context.Context, shortKey string) error
}

// LandingPageRepository defines operations for landing pages
type LandingPageRepository interface {
	Repository[models.LandingPage]
	ByPath(ctx context.Context, path string) (*models.LandingPage, error)
}

// TopicRepository defines operations for contact topics
type TopicRepository interface {
	Repository[models.Topic]
	ByID(ctx context.Context, id uuid.UUID) (*models.Topic, error)
}

// MessageRepository defines operations for contact messages
type MessageRepository interface {
	Repository[models.Message]
	ListByTopic(ctx context.Context, topicID uuid.UUID) ([]*models.Message, error)
}

// Transactor runs fn inside a transaction carried on the context
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}
