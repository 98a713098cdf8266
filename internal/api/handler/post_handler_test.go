package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gracechapel/content-api/internal/core/domain"
	"github.com/gracechapel/content-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stub services
// ---------------------------------------------------------------------------

type stubPostService struct {
	createFn     func(ctx context.Context, input ports.SavePostInput) (string, error)
	getFn        func(ctx context.Context, id string) (*domain.Post, error)
	promoteDueFn func(ctx context.Context, now time.Time) (int, error)
	feedFn       func(ctx context.Context, t domain.PostType, limit int) ([]*domain.Post, error)
}

func (s *stubPostService) Create(ctx context.Context, input ports.SavePostInput) (string, error) {
	return s.createFn(ctx, input)
}

func (s *stubPostService) Update(ctx context.Context, id string, input ports.SavePostInput) (*domain.Post, error) {
	return nil, errors.New("not implemented")
}

func (s *stubPostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	return s.getFn(ctx, id)
}

func (s *stubPostService) List(ctx context.Context, f ports.ListPostsFilter) ([]*domain.Post, error) {
	return nil, nil
}

func (s *stubPostService) ListPublished(ctx context.Context, t domain.PostType, limit int) ([]*domain.Post, error) {
	return s.feedFn(ctx, t, limit)
}

func (s *stubPostService) Delete(ctx context.Context, id string) error {
	return nil
}

func (s *stubPostService) PromoteDue(ctx context.Context, now time.Time) (int, error) {
	return s.promoteDueFn(ctx, now)
}

type stubNotifyService struct {
	announceFn func(ctx context.Context, input ports.AnnounceInput) (*ports.AnnounceResult, error)
	calls      int
}

func (s *stubNotifyService) Announce(ctx context.Context, input ports.AnnounceInput) (*ports.AnnounceResult, error) {
	s.calls++
	return s.announceFn(ctx, input)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("identity", &domain.AdminIdentity{
		ID:          "adm_1",
		Email:       "admin@example.com",
		DisplayName: "Admin One",
		Role:        domain.RoleAdmin,
	})
	return c, rec
}

func publishedPost(id string) *domain.Post {
	at := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Post{
		ID:          id,
		Title:       "Easter service",
		Content:     "Join us Sunday at 9am.",
		Type:        domain.TypeEvent,
		Publication: domain.PublishedAt(at),
	}
}

// ---------------------------------------------------------------------------
// Create tests
// ---------------------------------------------------------------------------

func TestPostHandler_Create_Success(t *testing.T) {
	posts := &stubPostService{
		createFn: func(_ context.Context, input ports.SavePostInput) (string, error) {
			if input.AuthorEmail != "admin@example.com" {
				t.Errorf("author must come from the resolved identity, got %q", input.AuthorEmail)
			}
			return "post_1", nil
		},
	}
	notify := &stubNotifyService{}
	h := NewPostHandler(posts, notify)

	body := `{"title":"Easter service","content":"Join us.","type":"event","status":"draft"}`
	c, rec := newTestContext(t, http.MethodPost, "/v1/admin/posts", body)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if notify.calls != 0 {
		t.Error("a draft save must not trigger an announcement")
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "post_1" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestPostHandler_Create_PublishWithAnnounce(t *testing.T) {
	posts := &stubPostService{
		createFn: func(context.Context, ports.SavePostInput) (string, error) { return "post_1", nil },
		getFn: func(_ context.Context, id string) (*domain.Post, error) {
			return publishedPost(id), nil
		},
	}
	notify := &stubNotifyService{
		announceFn: func(_ context.Context, input ports.AnnounceInput) (*ports.AnnounceResult, error) {
			if input.PostID != "post_1" || input.Title != "Easter service" {
				t.Errorf("unexpected announce input: %+v", input)
			}
			return &ports.AnnounceResult{ReceiptID: "rcpt_1", RecipientCount: 3, Delivered: 3}, nil
		},
	}
	h := NewPostHandler(posts, notify)

	body := `{"title":"Easter service","content":"Join us.","type":"event","status":"published","announce":true}`
	c, rec := newTestContext(t, http.MethodPost, "/v1/admin/posts", body)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if notify.calls != 1 {
		t.Fatalf("expected exactly one announce, got %d", notify.calls)
	}

	var resp savePostResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Announcement == nil || resp.Announcement.RecipientCount != 3 {
		t.Errorf("response must carry the announce summary, got %+v", resp.Announcement)
	}
}

func TestPostHandler_Create_PublishWithoutAnnounce_IsSilent(t *testing.T) {
	posts := &stubPostService{
		createFn: func(context.Context, ports.SavePostInput) (string, error) { return "post_1", nil },
	}
	notify := &stubNotifyService{}
	h := NewPostHandler(posts, notify)

	body := `{"title":"Quiet update","content":"No fanfare.","type":"general","status":"published"}`
	c, _ := newTestContext(t, http.MethodPost, "/v1/admin/posts", body)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if notify.calls != 0 {
		t.Error("publishing without the announce flag must not notify")
	}
}

func TestPostHandler_Create_InvalidStatus(t *testing.T) {
	h := NewPostHandler(&stubPostService{
		createFn: func(context.Context, ports.SavePostInput) (string, error) {
			t.Fatal("service must not be called on invalid input")
			return "", nil
		},
	}, &stubNotifyService{})

	body := `{"title":"Bad","content":"x","type":"event","status":"archived"}`
	c, _ := newTestContext(t, http.MethodPost, "/v1/admin/posts", body)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestPostHandler_Create_MalformedBody(t *testing.T) {
	h := NewPostHandler(&stubPostService{}, &stubNotifyService{})

	c, _ := newTestContext(t, http.MethodPost, "/v1/admin/posts", "not-json")

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// PromoteDue tests
// ---------------------------------------------------------------------------

func TestPostHandler_PromoteDue(t *testing.T) {
	h := NewPostHandler(&stubPostService{
		promoteDueFn: func(context.Context, time.Time) (int, error) { return 2, nil },
	}, &stubNotifyService{})

	c, rec := newTestContext(t, http.MethodPost, "/v1/admin/posts/promote-due", "")

	if err := h.PromoteDue(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp promoteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Promoted != 2 {
		t.Errorf("expected 2 promotions, got %d", resp.Promoted)
	}
}

// ---------------------------------------------------------------------------
// Feed tests
// ---------------------------------------------------------------------------

func TestPostHandler_Feed_PassesTypeFilter(t *testing.T) {
	h := NewPostHandler(&stubPostService{
		feedFn: func(_ context.Context, pt domain.PostType, _ int) ([]*domain.Post, error) {
			if pt != domain.TypeEvent {
				t.Errorf("expected type filter %q, got %q", domain.TypeEvent, pt)
			}
			return []*domain.Post{publishedPost("post_1")}, nil
		},
	}, &stubNotifyService{})

	c, rec := newTestContext(t, http.MethodGet, "/v1/posts?type=event", "")

	if err := h.Feed(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp []postResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0].ID != "post_1" {
		t.Errorf("unexpected feed: %+v", resp)
	}
}
