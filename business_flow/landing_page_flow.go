package businessflow

import (
	"context"
	"errors"

	"github.com/amirphl/linkhub/app/dto"
	"github.com/amirphl/linkhub/app/services"
	"github.com/amirphl/linkhub/models"
	"github.com/amirphl/linkhub/repository"
	"github.com/amirphl/linkhub/utils"
	"go.uber.org/zap"
)

// LandingPageFlow stores and serves raw HTML pages by path.
type LandingPageFlow interface {
	Create(ctx context.Context, path string, html []byte) (*dto.CreateLandingPageResponse, error)
	Get(ctx context.Context, path string) ([]byte, error)
}

type LandingPageFlowImpl struct {
	repo  repository.LandingPageRepository
	cache services.PageCache
	log   *zap.Logger
}

// NewLandingPageFlow creates the flow. cache may be nil, in which case every
// read goes to the database.
func NewLandingPageFlow(repo repository.LandingPageRepository, cache services.PageCache, log *zap.Logger) LandingPageFlow {
	return &LandingPageFlowImpl{repo: repo, cache: cache, log: log}
}

func (f *LandingPageFlowImpl) Create(ctx context.Context, path string, html []byte) (*dto.CreateLandingPageResponse, error) {
	page := &models.LandingPage{
		Path: path,
		HTML: html,
	}
	if err := f.repo.Save(ctx, page); err != nil {
		f.log.Error("Failed to save landing page", zap.String("path", path), zap.Error(err))
		if errors.Is(err, repository.ErrDuplicatePath) {
			return nil, NewBusinessError("LANDING_PAGE_PATH_TAKEN", "Landing page path already exists", err)
		}
		return nil, NewStoreError("LANDING_PAGE_CREATE_FAILED", "Failed to create landing page", err)
	}
	return &dto.CreateLandingPageResponse{Success: true}, nil
}

// Get returns the page body. Bodies that are not valid UTF-8 are rejected with
// ErrLandingPageNotUTF8 and never cached.
func (f *LandingPageFlowImpl) Get(ctx context.Context, path string) ([]byte, error) {
	if f.cache != nil {
		html, err := f.cache.Get(ctx, path)
		switch {
		case err == nil:
			landingPageCache.WithLabelValues("hit").Inc()
			return html, nil
		case errors.Is(err, services.ErrCacheMiss):
			landingPageCache.WithLabelValues("miss").Inc()
		default:
			landingPageCache.WithLabelValues("error").Inc()
			f.log.Warn("Landing page cache read failed", zap.String("path", path), zap.Error(err))
		}
	}

	page, err := f.repo.ByPath(ctx, path)
	if err != nil {
		f.log.Error("Landing page lookup failed", zap.String("path", path), zap.Error(err))
		return nil, NewStoreError("LANDING_PAGE_LOOKUP_FAILED", "Failed to lookup landing page", err)
	}
	if page == nil {
		return nil, ErrLandingPageNotFound
	}
	if !utils.IsValidUTF8HTML(page.HTML) {
		f.log.Error("Landing page is not valid UTF-8", zap.String("path", path))
		return nil, NewBusinessError("LANDING_PAGE_NOT_UTF8", "Landing page body is not valid UTF-8", ErrLandingPageNotUTF8)
	}

	if f.cache != nil {
		if err := f.cache.Set(ctx, path, page.HTML); err != nil {
			f.log.Warn("Landing page cache write failed", zap.String("path", path), zap.Error(err))
		}
	}
	return page.HTML, nil
}
