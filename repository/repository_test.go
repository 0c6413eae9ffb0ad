package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/amirphl/linkhub/models"
	"github.com/amirphl/linkhub/repository"
	testingutil "github.com/amirphl/linkhub/testing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortLinkRepository(t *testing.T) {
	testingutil.SkipIfNoDB(t)

	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewShortLinkRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		t.Run("InsertAndLookup", func(t *testing.T) {
			link := &models.ShortLink{ShortKey: "AbC123", URL: "https://example.com", Token: "tok"}
			require.NoError(t, repo.Insert(ctx, link))
			assert.NotZero(t, link.ID)

			found, err := repo.ByShortKey(ctx, "AbC123")
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, "https://example.com", found.URL)
			assert.Equal(t, 0, found.Clicks)

			exists, err := repo.ExistsByShortKey(ctx, "AbC123")
			require.NoError(t, err)
			assert.True(t, exists)
		})

		t.Run("KeysAreCaseSensitive", func(t *testing.T) {
			exists, err := repo.ExistsByShortKey(ctx, "abc123")
			require.NoError(t, err)
			assert.False(t, exists)
		})

		t.Run("DuplicateKeyRejected", func(t *testing.T) {
			existing, err := fixtures.CreateTestShortLink("https://example.com/first")
			require.NoError(t, err)

			dup := &models.ShortLink{ShortKey: existing.ShortKey, URL: "https://example.com/second", Token: "other"}
			err = repo.Insert(ctx, dup)
			assert.ErrorIs(t, err, repository.ErrDuplicateShortKey)

			found, err := repo.ByShortKey(ctx, existing.ShortKey)
			require.NoError(t, err)
			assert.Equal(t, "https://example.com/first", found.URL)
		})

		t.Run("ByShortKeyNotFound", func(t *testing.T) {
			found, err := repo.ByShortKey(ctx, "zzzzzz")
			assert.NoError(t, err)
			assert.Nil(t, found)
		})

		t.Run("ConcurrentIncrements", func(t *testing.T) {
			link, err := fixtures.CreateTestShortLink("https://example.com/hot")
			require.NoError(t, err)

			const visits = 20
			var wg sync.WaitGroup
			for i := 0; i < visits; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					assert.NoError(t, repo.IncrementClicks(ctx, link.ShortKey))
				}()
			}
			wg.Wait()

			found, err := repo.ByShortKey(ctx, link.ShortKey)
			require.NoError(t, err)
			assert.Equal(t, visits, found.Clicks)
		})

		t.Run("IncrementUnknownKey", func(t *testing.T) {
			err := repo.IncrementClicks(ctx, "nope00")
			assert.ErrorIs(t, err, repository.ErrNoRowsAffected)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestLandingPageRepository(t *testing.T) {
	testingutil.SkipIfNoDB(t)

	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewLandingPageRepository(testDB.DB)
		ctx := testingutil.CreateTestContext()

		t.Run("SaveAndRead", func(t *testing.T) {
			html := []byte("<html>héllo</html>")
			require.NoError(t, repo.Save(ctx, &models.LandingPage{Path: "welcome", HTML: html}))

			page, err := repo.ByPath(ctx, "welcome")
			require.NoError(t, err)
			require.NotNil(t, page)
			assert.Equal(t, html, page.HTML)
		})

		t.Run("DuplicatePath", func(t *testing.T) {
			err := repo.Save(ctx, &models.LandingPage{Path: "welcome", HTML: []byte("<p/>")})
			assert.ErrorIs(t, err, repository.ErrDuplicatePath)
		})

		t.Run("Missing", func(t *testing.T) {
			page, err := repo.ByPath(ctx, "missing")
			assert.NoError(t, err)
			assert.Nil(t, page)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestContactRepositories(t *testing.T) {
	testingutil.SkipIfNoDB(t)

	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		topics := repository.NewTopicRepository(testDB.DB)
		messages := repository.NewMessageRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		t.Run("MessagesInCreationOrder", func(t *testing.T) {
			topic, err := fixtures.CreateTestTopic("support")
			require.NoError(t, err)

			base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
			for i, text := range []string{"second", "first"} {
				require.NoError(t, messages.Save(ctx, &models.Message{
					ID:        uuid.New(),
					TopicID:   topic.ID,
					Email:     "a@example.com",
					Text:      text,
					CreatedAt: base.Add(time.Duration(1-i) * time.Minute),
				}))
			}

			list, err := messages.ListByTopic(ctx, topic.ID)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "first", list[0].Text)
			assert.Equal(t, "second", list[1].Text)
		})

		t.Run("TopicByIDMissing", func(t *testing.T) {
			topic, err := topics.ByID(ctx, uuid.New())
			assert.NoError(t, err)
			assert.Nil(t, topic)
		})

		t.Run("MessageRequiresTopic", func(t *testing.T) {
			err := messages.Save(ctx, &models.Message{ID: uuid.New(), TopicID: uuid.New(), Email: "a@example.com", Text: "orphan"})
			assert.Error(t, err)
		})

		t.Run("TransactionRollsBack", func(t *testing.T) {
			boom := errors.New("boom")
			id := uuid.New()

			err := repository.WithTransaction(ctx, testDB.DB, func(txCtx context.Context) error {
				if err := topics.Save(txCtx, &models.Topic{ID: id, Name: "rolled back"}); err != nil {
					return err
				}
				return boom
			})
			assert.ErrorIs(t, err, boom)

			topic, err := topics.ByID(ctx, id)
			require.NoError(t, err)
			assert.Nil(t, topic)
		})

		t.Run("TransactionCommits", func(t *testing.T) {
			id := uuid.New()
			tx := repository.NewTransactor(testDB.DB)

			err := tx.WithTransaction(ctx, func(txCtx context.Context) error {
				return topics.Save(txCtx, &models.Topic{ID: id, Name: "kept"})
			})
			require.NoError(t, err)

			topic, err := topics.ByID(ctx, id)
			require.NoError(t, err)
			require.NotNil(t, topic)
			assert.Equal(t, "kept", topic.Name)
		})

		return nil
	})
	require.NoError(t, err)
}
