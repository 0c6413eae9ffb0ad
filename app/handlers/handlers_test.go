package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amirphl/linkhub/app/dto"
	businessflow "github.com/amirphl/linkhub/business_flow"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeShortLinkFlow struct {
	createErr   error
	gotHost     string
	redirectURL string
	redirectErr error
	gotToken    *string
	stats       *dto.ShortLinkStatsResponse
	statsErr    error
}

func (f *fakeShortLinkFlow) Create(ctx context.Context, destinationURL, hostname string) (*dto.CreateShortLinkResponse, error) {
	f.gotHost = hostname
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &dto.CreateShortLinkResponse{
		ShortURL: "http://" + hostname + "/AbC123",
		StatsURL: "http://" + hostname + "/AbC123/info?token=tok",
	}, nil
}

func (f *fakeShortLinkFlow) Redirect(ctx context.Context, shortKey string) (string, error) {
	return f.redirectURL, f.redirectErr
}

func (f *fakeShortLinkFlow) GetStats(ctx context.Context, shortKey string, token *string) (*dto.ShortLinkStatsResponse, error) {
	f.gotToken = token
	return f.stats, f.statsErr
}

type fakeLandingPageFlow struct {
	pages     map[string][]byte
	getErr    error
	createErr error
}

func (f *fakeLandingPageFlow) Create(ctx context.Context, path string, html []byte) (*dto.CreateLandingPageResponse, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.pages[path] = html
	return &dto.CreateLandingPageResponse{Success: true}, nil
}

func (f *fakeLandingPageFlow) Get(ctx context.Context, path string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	html, ok := f.pages[path]
	if !ok {
		return nil, businessflow.ErrLandingPageNotFound
	}
	return html, nil
}

type fakeContactFlow struct {
	topicID    uuid.UUID
	messageErr error
	listed     []dto.MessageDTO
	listErr    error
	gotMessage *dto.CreateMessageRequest
}

func (f *fakeContactFlow) CreateTopic(ctx context.Context, req *dto.CreateTopicRequest) (*dto.CreateTopicResponse, error) {
	return &dto.CreateTopicResponse{ID: f.topicID}, nil
}

func (f *fakeContactFlow) CreateMessage(ctx context.Context, req *dto.CreateMessageRequest) error {
	f.gotMessage = req
	return f.messageErr
}

func (f *fakeContactFlow) ListMessages(ctx context.Context, topicID uuid.UUID) ([]dto.MessageDTO, error) {
	return f.listed, f.listErr
}

type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(ctx context.Context) error {
	return p.err
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string, headers map[string]string) (*http.Response, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		if k == "Host" {
			req.Host = v
			continue
		}
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

func errorCode(t *testing.T, body string) string {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Error   dto.ErrorDetail `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &envelope))
	assert.False(t, envelope.Success)
	return envelope.Error.Code
}

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

func TestShortLinkHandler(t *testing.T) {
	newApp := func(flow *fakeShortLinkFlow) *fiber.App {
		h := NewShortLinkHandler(flow, zap.NewNop())
		app := fiber.New()
		app.Post("/gen", h.Create)
		app.Get("/:short_key", h.Redirect)
		app.Get("/:short_key/info", h.Stats)
		return app
	}

	t.Run("CreateUsesHostHeader", func(t *testing.T) {
		flow := &fakeShortLinkFlow{}
		app := newApp(flow)

		headers := map[string]string{"Content-Type": "application/json", "Host": "sho.rt:8080"}
		resp, body := doRequest(t, app, http.MethodPost, "/gen", `{"url":"https://example.com"}`, headers)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
		assert.Equal(t, "sho.rt:8080", flow.gotHost)

		var out dto.CreateShortLinkResponse
		require.NoError(t, json.Unmarshal([]byte(body), &out))
		assert.Equal(t, "http://sho.rt:8080/AbC123", out.ShortURL)
		assert.Equal(t, "http://sho.rt:8080/AbC123/info?token=tok", out.StatsURL)
	})

	createFailures := []struct {
		name       string
		body       string
		createErr  error
		wantStatus int
		wantCode   string
	}{
		{name: "malformed json", body: `{"url":`, wantStatus: fiber.StatusBadRequest, wantCode: "INVALID_REQUEST"},
		{name: "missing url", body: `{}`, wantStatus: fiber.StatusBadRequest, wantCode: "VALIDATION_ERROR"},
		{name: "generation exhausted", body: `{"url":"x"}`, createErr: businessflow.ErrKeyGenerationExhausted, wantStatus: fiber.StatusInternalServerError, wantCode: "INTERNAL_ERROR"},
		{name: "store failure", body: `{"url":"x"}`, createErr: businessflow.NewStoreError("SHORT_LINK_CREATE_FAILED", "Failed", errors.New("db down")), wantStatus: fiber.StatusInternalServerError, wantCode: "INTERNAL_ERROR"},
	}
	for _, tt := range createFailures {
		t.Run("Create "+tt.name, func(t *testing.T) {
			flow := &fakeShortLinkFlow{createErr: tt.createErr}
			resp, body := doRequest(t, newApp(flow), http.MethodPost, "/gen", tt.body, jsonHeaders)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantCode, errorCode(t, body))
			assert.NotContains(t, body, "db down")
		})
	}

	t.Run("RedirectIsTemporary", func(t *testing.T) {
		flow := &fakeShortLinkFlow{redirectURL: "https://example.com/a?b=c"}
		resp, _ := doRequest(t, newApp(flow), http.MethodGet, "/AbC123", "", nil)
		assert.Equal(t, fiber.StatusTemporaryRedirect, resp.StatusCode)
		assert.Equal(t, "https://example.com/a?b=c", resp.Header.Get("Location"))
	})

	redirectFailures := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "unknown key", err: businessflow.ErrShortLinkNotFound, wantStatus: fiber.StatusNotFound},
		{name: "store failure", err: businessflow.NewStoreError("SHORT_LINK_TRACK_FAILED", "Failed", errors.New("db down")), wantStatus: fiber.StatusInternalServerError},
	}
	for _, tt := range redirectFailures {
		t.Run("Redirect "+tt.name, func(t *testing.T) {
			flow := &fakeShortLinkFlow{redirectErr: tt.err}
			resp, _ := doRequest(t, newApp(flow), http.MethodGet, "/AbC123", "", nil)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}

	t.Run("StatsTokenParsing", func(t *testing.T) {
		tests := []struct {
			target    string
			wantToken *string
		}{
			{target: "/AbC123/info", wantToken: nil},
			{target: "/AbC123/info?token=", wantToken: ptr("")},
			{target: "/AbC123/info?token=abc", wantToken: ptr("abc")},
		}
		for _, tt := range tests {
			flow := &fakeShortLinkFlow{statsErr: businessflow.ErrShortLinkNotFound}
			doRequest(t, newApp(flow), http.MethodGet, tt.target, "", nil)
			assert.Equal(t, tt.wantToken, flow.gotToken, tt.target)
		}
	})

	statsCases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: businessflow.ErrShortLinkNotFound, wantStatus: fiber.StatusNotFound},
		{name: "wrong token", err: businessflow.ErrInvalidStatsToken, wantStatus: fiber.StatusUnauthorized},
		{name: "store failure", err: businessflow.NewStoreError("SHORT_LINK_LOOKUP_FAILED", "Failed", errors.New("db down")), wantStatus: fiber.StatusInternalServerError},
	}
	for _, tt := range statsCases {
		t.Run("Stats "+tt.name, func(t *testing.T) {
			flow := &fakeShortLinkFlow{statsErr: tt.err}
			resp, _ := doRequest(t, newApp(flow), http.MethodGet, "/AbC123/info?token=x", "", nil)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}

	t.Run("StatsBody", func(t *testing.T) {
		flow := &fakeShortLinkFlow{stats: &dto.ShortLinkStatsResponse{ID: 7, ShortKey: "AbC123", URL: "https://example.com", Token: "tok", Clicks: 2}}
		resp, body := doRequest(t, newApp(flow), http.MethodGet, "/AbC123/info?token=tok", "", nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"id":7,"short_key":"AbC123","url":"https://example.com","token":"tok","clicks":2}`, body)
	})
}

func ptr(s string) *string {
	return &s
}

func TestLandingPageHandler(t *testing.T) {
	newApp := func(flow *fakeLandingPageFlow) *fiber.App {
		h := NewLandingPageHandler(flow, zap.NewNop())
		app := fiber.New()
		app.Get("/landing-page/ping", h.Ping)
		app.Get("/landing-page/:path", h.Get)
		app.Post("/landing-page/:path", h.Create)
		return app
	}

	t.Run("CreateThenGet", func(t *testing.T) {
		flow := &fakeLandingPageFlow{pages: map[string][]byte{}}
		app := newApp(flow)

		resp, body := doRequest(t, app, http.MethodPost, "/landing-page/welcome", "<h1>hi</h1>", map[string]string{"Content-Type": "text/html"})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"success":true}`, body)

		resp, body = doRequest(t, app, http.MethodGet, "/landing-page/welcome", "", nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
		assert.Equal(t, "<h1>hi</h1>", body)
	})

	t.Run("Missing", func(t *testing.T) {
		resp, body := doRequest(t, newApp(&fakeLandingPageFlow{pages: map[string][]byte{}}), http.MethodGet, "/landing-page/nope", "", nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
		assert.Equal(t, "Page not found", body)
	})

	t.Run("NotUTF8", func(t *testing.T) {
		flow := &fakeLandingPageFlow{pages: map[string][]byte{}, getErr: businessflow.ErrLandingPageNotUTF8}
		resp, body := doRequest(t, newApp(flow), http.MethodGet, "/landing-page/broken", "", nil)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		assert.JSONEq(t, `{"error":"Internal server error"}`, body)
	})

	t.Run("CreateFailure", func(t *testing.T) {
		flow := &fakeLandingPageFlow{pages: map[string][]byte{}, createErr: businessflow.NewBusinessError("LANDING_PAGE_PATH_TAKEN", "taken", nil)}
		resp, body := doRequest(t, newApp(flow), http.MethodPost, "/landing-page/welcome", "<p/>", nil)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		assert.JSONEq(t, `{"error":"Internal server error"}`, body)
	})

	t.Run("Ping", func(t *testing.T) {
		resp, body := doRequest(t, newApp(&fakeLandingPageFlow{}), http.MethodGet, "/landing-page/ping", "", nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "pong", body)
	})
}

func TestContactHandler(t *testing.T) {
	topicID := uuid.New()
	newApp := func(flow *fakeContactFlow) *fiber.App {
		h := NewContactHandler(flow, zap.NewNop())
		app := fiber.New()
		app.Post("/contact/topics", h.CreateTopic)
		app.Post("/contact/messages", h.CreateMessage)
		app.Get("/contact/topics/:topic_id/messages", h.ListMessages)
		return app
	}

	t.Run("CreateTopic", func(t *testing.T) {
		resp, body := doRequest(t, newApp(&fakeContactFlow{topicID: topicID}), http.MethodPost, "/contact/topics", `{"name":"support"}`, jsonHeaders)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"id":"`+topicID.String()+`"}`, body)
	})

	t.Run("CreateTopicMissingName", func(t *testing.T) {
		resp, body := doRequest(t, newApp(&fakeContactFlow{}), http.MethodPost, "/contact/topics", `{}`, jsonHeaders)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, body))
	})

	t.Run("CreateMessage", func(t *testing.T) {
		flow := &fakeContactFlow{}
		payload := `{"email":"a@example.com","text":"hello","topic_id":"` + topicID.String() + `"}`
		resp, body := doRequest(t, newApp(flow), http.MethodPost, "/contact/messages", payload, jsonHeaders)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
		assert.Empty(t, body)
		require.NotNil(t, flow.gotMessage)
		assert.Equal(t, "hello", flow.gotMessage.Text)
	})

	messageFailures := []struct {
		name       string
		payload    string
		flowErr    error
		wantStatus int
	}{
		{name: "bad email", payload: `{"email":"nope","text":"hi","topic_id":"` + topicID.String() + `"}`, wantStatus: fiber.StatusBadRequest},
		{name: "missing text", payload: `{"email":"a@example.com","topic_id":"` + topicID.String() + `"}`, wantStatus: fiber.StatusBadRequest},
		{name: "bad topic id", payload: `{"email":"a@example.com","text":"hi","topic_id":"42"}`, wantStatus: fiber.StatusBadRequest},
		{name: "unknown topic", payload: `{"email":"a@example.com","text":"hi","topic_id":"` + topicID.String() + `"}`, flowErr: businessflow.ErrTopicNotFound, wantStatus: fiber.StatusNotFound},
	}
	for _, tt := range messageFailures {
		t.Run("CreateMessage "+tt.name, func(t *testing.T) {
			resp, _ := doRequest(t, newApp(&fakeContactFlow{messageErr: tt.flowErr}), http.MethodPost, "/contact/messages", tt.payload, jsonHeaders)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}

	t.Run("ListMessages", func(t *testing.T) {
		flow := &fakeContactFlow{listed: []dto.MessageDTO{{ID: uuid.New(), TopicID: topicID, Email: "a@example.com", Text: "hi"}}}
		resp, body := doRequest(t, newApp(flow), http.MethodGet, "/contact/topics/"+topicID.String()+"/messages", "", nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out []dto.MessageDTO
		require.NoError(t, json.Unmarshal([]byte(body), &out))
		require.Len(t, out, 1)
		assert.Equal(t, "hi", out[0].Text)
	})

	t.Run("ListMessagesMalformedTopic", func(t *testing.T) {
		resp, _ := doRequest(t, newApp(&fakeContactFlow{}), http.MethodGet, "/contact/topics/not-a-uuid/messages", "", nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestHealthHandler(t *testing.T) {
	newApp := func(db DBPinger, cache *redis.Client) *fiber.App {
		h := NewHealthHandler(db, cache, "test", zap.NewNop())
		app := fiber.New()
		app.Get("/ping", h.Ping)
		app.Get("/healthz", h.Health)
		return app
	}

	t.Run("Ping", func(t *testing.T) {
		resp, body := doRequest(t, newApp(fakePinger{}, nil), http.MethodGet, "/ping", "", nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "pong", body)
	})

	t.Run("Healthy", func(t *testing.T) {
		resp, body := doRequest(t, newApp(fakePinger{}, nil), http.MethodGet, "/healthz", "", nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, body, `"database":"ok"`)
		assert.Contains(t, body, `"cache":"disabled"`)
	})

	t.Run("DatabaseDown", func(t *testing.T) {
		resp, body := doRequest(t, newApp(fakePinger{err: errors.New("refused")}, nil), http.MethodGet, "/healthz", "", nil)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
		assert.Contains(t, body, `"database":"down"`)
	})

	t.Run("CacheDown", func(t *testing.T) {
		rc := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
		defer rc.Close()

		resp, body := doRequest(t, newApp(fakePinger{}, rc), http.MethodGet, "/healthz", "", nil)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
		assert.Contains(t, body, `"cache":"down"`)
	})
}
