package businessflow

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/amirphl/linkhub/app/dto"
	"github.com/amirphl/linkhub/config"
	"github.com/amirphl/linkhub/models"
	"github.com/amirphl/linkhub/repository"
	"go.uber.org/zap"
)

// ShortLinkFlow creates short links, resolves them for redirects and serves
// their stats to whoever holds the token.
type ShortLinkFlow interface {
	Create(ctx context.Context, destinationURL, hostname string) (*dto.CreateShortLinkResponse, error)
	Redirect(ctx context.Context, shortKey string) (string, error)
	GetStats(ctx context.Context, shortKey string, token *string) (*dto.ShortLinkStatsResponse, error)
}

type ShortLinkFlowImpl struct {
	repo   repository.ShortLinkRepository
	keys   *KeyGenerator
	config *config.LinkConfig
	log    *zap.Logger
}

// NewShortLinkFlow creates the short link flow.
func NewShortLinkFlow(repo repository.ShortLinkRepository, keys *KeyGenerator, cfg *config.LinkConfig, log *zap.Logger) ShortLinkFlow {
	return &ShortLinkFlowImpl{
		repo:   repo,
		keys:   keys,
		config: cfg,
		log:    log,
	}
}

func (f *ShortLinkFlowImpl) Create(ctx context.Context, destinationURL, hostname string) (*dto.CreateShortLinkResponse, error) {
	for attempt := 1; attempt <= f.config.MaxInsertAttempts; attempt++ {
		key, err := f.keys.Generate(ctx, f.repo.ExistsByShortKey, f.config.MaxKeyAttempts)
		if err != nil {
			f.log.Error("Short key generation failed", zap.Int("insert_attempt", attempt), zap.Error(err))
			return nil, err
		}

		token, err := f.keys.Token()
		if err != nil {
			f.log.Error("Stats token generation failed", zap.Error(err))
			return nil, err
		}

		row := &models.ShortLink{
			ShortKey: key,
			URL:      destinationURL,
			Token:    token,
		}
		err = f.repo.Insert(ctx, row)
		if errors.Is(err, repository.ErrDuplicateShortKey) {
			// Lost the race between probe and insert
			shortKeyCollisions.WithLabelValues("insert").Inc()
			f.log.Warn("Short key taken at insert",
				zap.String("short_key", key),
				zap.Int("insert_attempt", attempt),
			)
			continue
		}
		if err != nil {
			f.log.Error("Failed to persist short link", zap.String("short_key", key), zap.Error(err))
			return nil, NewStoreError("SHORT_LINK_CREATE_FAILED", "Failed to create short link", err)
		}

		shortLinksCreated.Inc()
		shortURL := fmt.Sprintf("%s://%s/%s", f.config.Scheme, hostname, key)
		return &dto.CreateShortLinkResponse{
			ShortURL: shortURL,
			StatsURL: fmt.Sprintf("%s/info?token=%s", shortURL, token),
		}, nil
	}

	f.log.Error("Short key insert attempts exhausted", zap.Int("max_insert_attempts", f.config.MaxInsertAttempts))
	return nil, NewBusinessError("KEY_GENERATION_EXHAUSTED", "All short key candidates were taken at insert", ErrKeyGenerationExhausted)
}

func (f *ShortLinkFlowImpl) Redirect(ctx context.Context, shortKey string) (string, error) {
	row, err := f.repo.ByShortKey(ctx, shortKey)
	if err != nil {
		f.log.Error("Short link lookup failed", zap.String("short_key", shortKey), zap.Error(err))
		return "", NewStoreError("SHORT_LINK_LOOKUP_FAILED", "Failed to lookup short link", err)
	}
	if row == nil {
		return "", ErrShortLinkNotFound
	}

	if err := f.repo.IncrementClicks(ctx, shortKey); err != nil {
		f.log.Error("Short link click tracking failed", zap.String("short_key", shortKey), zap.Error(err))
		return "", NewStoreError("SHORT_LINK_TRACK_FAILED", "Failed to track short link click", err)
	}

	shortLinkRedirects.Inc()
	return row.URL, nil
}

// GetStats hides whether a link exists from callers without a token: both
// cases report ErrShortLinkNotFound.
func (f *ShortLinkFlowImpl) GetStats(ctx context.Context, shortKey string, token *string) (*dto.ShortLinkStatsResponse, error) {
	row, err := f.repo.ByShortKey(ctx, shortKey)
	if err != nil {
		f.log.Error("Short link lookup failed", zap.String("short_key", shortKey), zap.Error(err))
		return nil, NewStoreError("SHORT_LINK_LOOKUP_FAILED", "Failed to lookup short link", err)
	}
	if row == nil || token == nil {
		return nil, ErrShortLinkNotFound
	}
	if subtle.ConstantTimeCompare([]byte(*token), []byte(row.Token)) != 1 {
		return nil, ErrInvalidStatsToken
	}

	return ToShortLinkStatsDTO(*row), nil
}

// ToShortLinkStatsDTO converts a short link model to its stats response.
func ToShortLinkStatsDTO(row models.ShortLink) *dto.ShortLinkStatsResponse {
	return &dto.ShortLinkStatsResponse{
		ID:       row.ID,
		ShortKey: row.ShortKey,
		URL:      row.URL,
		Token:    row.Token,
		Clicks:   row.Clicks,
	}
}
