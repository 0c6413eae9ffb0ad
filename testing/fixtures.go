package testing

import (
	"fmt"
	"math/rand"

	"github.com/amirphl/linkhub/models"
	"github.com/google/uuid"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

const fixtureAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func randomString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = fixtureAlphabet[rand.Intn(len(fixtureAlphabet))]
	}
	return string(b)
}

// CreateTestShortLink inserts a short link with a random key and token
func (tf *TestFixtures) CreateTestShortLink(url string) (*models.ShortLink, error) {
	link := &models.ShortLink{
		ShortKey: randomString(6),
		URL:      url,
		Token:    randomString(24),
	}
	if err := tf.DB.DB.Create(link).Error; err != nil {
		return nil, fmt.Errorf("failed to create test short link: %w", err)
	}
	return link, nil
}

// CreateTestLandingPage stores html under path
func (tf *TestFixtures) CreateTestLandingPage(path string, html []byte) (*models.LandingPage, error) {
	page := &models.LandingPage{Path: path, HTML: html}
	if err := tf.DB.DB.Create(page).Error; err != nil {
		return nil, fmt.Errorf("failed to create test landing page %s: %w", path, err)
	}
	return page, nil
}

// CreateTestTopic inserts a topic with a fresh id
func (tf *TestFixtures) CreateTestTopic(name string) (*models.Topic, error) {
	topic := &models.Topic{ID: uuid.New(), Name: name}
	if err := tf.DB.DB.Create(topic).Error; err != nil {
		return nil, fmt.Errorf("failed to create test topic %s: %w", name, err)
	}
	return topic, nil
}
