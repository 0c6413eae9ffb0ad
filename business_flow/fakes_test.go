package businessflow

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/amirphl/linkhub/app/services"
	"github.com/amirphl/linkhub/models"
	"github.com/amirphl/linkhub/repository"
	"github.com/google/uuid"
)

var errDatabaseDown = errors.New("connection refused")

// memoryShortLinkRepo enforces short_key uniqueness the way the schema does
type memoryShortLinkRepo struct {
	mu     sync.Mutex
	rows   map[string]*models.ShortLink
	nextID uint

	beforeExists func(key string)
	hidden       map[string]bool // keys the probe misses but insert rejects
	lookupErr    error
	insertErr    error
	incrementErr error
}

func newMemoryShortLinkRepo() *memoryShortLinkRepo {
	return &memoryShortLinkRepo{rows: make(map[string]*models.ShortLink), hidden: make(map[string]bool)}
}

func (r *memoryShortLinkRepo) ExistsByShortKey(ctx context.Context, shortKey string) (bool, error) {
	if r.beforeExists != nil {
		r.beforeExists(shortKey)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rows[shortKey]
	return ok, nil
}

func (r *memoryShortLinkRepo) Insert(ctx context.Context, link *models.ShortLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	if _, ok := r.rows[link.ShortKey]; ok || r.hidden[link.ShortKey] {
		return repository.ErrDuplicateShortKey
	}
	r.nextID++
	row := *link
	row.ID = r.nextID
	r.rows[link.ShortKey] = &row
	link.ID = row.ID
	return nil
}

func (r *memoryShortLinkRepo) ByShortKey(ctx context.Context, shortKey string) (*models.ShortLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	row, ok := r.rows[shortKey]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (r *memoryShortLinkRepo) IncrementClicks(ctx context.Context, shortKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.incrementErr != nil {
		return r.incrementErr
	}
	row, ok := r.rows[shortKey]
	if !ok {
		return repository.ErrNoRowsAffected
	}
	row.Clicks++
	return nil
}

func (r *memoryShortLinkRepo) keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.rows))
	for k := range r.rows {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type memoryLandingPageRepo struct {
	pages   map[string]*models.LandingPage
	reads   int
	saveErr error
}

func newMemoryLandingPageRepo() *memoryLandingPageRepo {
	return &memoryLandingPageRepo{pages: make(map[string]*models.LandingPage)}
}

func (r *memoryLandingPageRepo) Save(ctx context.Context, page *models.LandingPage) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	if _, ok := r.pages[page.Path]; ok {
		return repository.ErrDuplicatePath
	}
	r.pages[page.Path] = page
	return nil
}

func (r *memoryLandingPageRepo) ByPath(ctx context.Context, path string) (*models.LandingPage, error) {
	r.reads++
	page, ok := r.pages[path]
	if !ok {
		return nil, nil
	}
	return page, nil
}

type memoryPageCache struct {
	entries map[string][]byte
	getErr  error
}

func newMemoryPageCache() *memoryPageCache {
	return &memoryPageCache{entries: make(map[string][]byte)}
}

func (c *memoryPageCache) Get(ctx context.Context, path string) ([]byte, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	html, ok := c.entries[path]
	if !ok {
		return nil, services.ErrCacheMiss
	}
	return html, nil
}

func (c *memoryPageCache) Set(ctx context.Context, path string, html []byte) error {
	c.entries[path] = html
	return nil
}

type memoryTopicRepo struct {
	topics  map[uuid.UUID]*models.Topic
	saveErr error
}

func newMemoryTopicRepo() *memoryTopicRepo {
	return &memoryTopicRepo{topics: make(map[uuid.UUID]*models.Topic)}
}

func (r *memoryTopicRepo) Save(ctx context.Context, topic *models.Topic) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.topics[topic.ID] = topic
	return nil
}

func (r *memoryTopicRepo) ByID(ctx context.Context, id uuid.UUID) (*models.Topic, error) {
	topic, ok := r.topics[id]
	if !ok {
		return nil, nil
	}
	return topic, nil
}

type memoryMessageRepo struct {
	messages []*models.Message
	saveErr  error
}

func (r *memoryMessageRepo) Save(ctx context.Context, message *models.Message) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.messages = append(r.messages, message)
	return nil
}

func (r *memoryMessageRepo) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]*models.Message, error) {
	var out []*models.Message
	for _, m := range r.messages {
		if m.TopicID == topicID {
			out = append(out, m)
		}
	}
	return out, nil
}

// passthroughTx runs fn directly and counts invocations
type passthroughTx struct {
	calls int
}

func (t *passthroughTx) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	t.calls++
	return fn(ctx)
}
