package content

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/codecafelab/content-service/internal/errx"
)

/***************
 * Mocks
 ***************/

type mockService struct {
	schema           Schema
	listFunc         func(ctx context.Context) ([]Item, error)
	listActiveFunc   func(ctx context.Context) ([]Item, error)
	listFeaturedFunc func(ctx context.Context) ([]Item, error)
	getByIDFunc      func(ctx context.Context, id int64) (Item, error)
	getBySlugFunc    func(ctx context.Context, slug string) (Item, error)
	createFunc       func(ctx context.Context, item Item) (Item, error)
	updateFunc       func(ctx context.Context, id int64, item Item) (bool, error)
	deleteFunc       func(ctx context.Context, id int64) (bool, error)
	incrementFunc    func(ctx context.Context, id int64) (bool, error)
}

func (m *mockService) Schema() Schema { return m.schema }

func (m *mockService) List(ctx context.Context) ([]Item, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []Item{}, nil
}

func (m *mockService) ListActive(ctx context.Context) ([]Item, error) {
	if m.listActiveFunc != nil {
		return m.listActiveFunc(ctx)
	}
	return []Item{}, nil
}

func (m *mockService) ListFeatured(ctx context.Context) ([]Item, error) {
	if m.listFeaturedFunc != nil {
		return m.listFeaturedFunc(ctx)
	}
	return []Item{}, nil
}

func (m *mockService) GetByID(ctx context.Context, id int64) (Item, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return Item{}, errx.E("op", errx.NotFound, errors.New("not found"))
}

func (m *mockService) GetBySlug(ctx context.Context, slug string) (Item, error) {
	if m.getBySlugFunc != nil {
		return m.getBySlugFunc(ctx, slug)
	}
	return Item{}, errx.E("op", errx.NotFound, errors.New("not found"))
}

func (m *mockService) Create(ctx context.Context, item Item) (Item, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, item)
	}
	item.ID = 1
	return item, nil
}

func (m *mockService) Update(ctx context.Context, id int64, item Item) (bool, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, item)
	}
	return true, nil
}

func (m *mockService) Delete(ctx context.Context, id int64) (bool, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return true, nil
}

func (m *mockService) IncrementCounter(ctx context.Context, id int64) (bool, error) {
	if m.incrementFunc != nil {
		return m.incrementFunc(ctx, id)
	}
	return true, nil
}

func newTestHandler(t *testing.T, svc Service) *Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(map[string]Service{svc.Schema().Kind: svc}, logger)
}

func testBlogService(t *testing.T) *mockService {
	return &mockService{schema: blogSchema(t)}
}

func request(method, target, body string, pathValues map[string]string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	for k, v := range pathValues {
		r.SetPathValue(k, v)
	}
	return r
}

/***************
 * Tests
 ***************/

func TestHandlerUnknownKind(t *testing.T) {
	h := newTestHandler(t, testBlogService(t))

	rec := httptest.NewRecorder()
	h.List(rec, request("GET", "/api/content/podcasts", "", map[string]string{"kind": "podcasts"}))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandlerList(t *testing.T) {
	svc := testBlogService(t)
	svc.listFunc = func(ctx context.Context) ([]Item, error) {
		return []Item{
			{ID: 2, Title: "Newer", Slug: "newer", Status: StatusDraft, Tags: []string{}},
			{ID: 1, Title: "Older", Slug: "older", Status: StatusPublished, Tags: []string{"go"}},
		}, nil
	}
	h := newTestHandler(t, svc)

	rec := httptest.NewRecorder()
	h.List(rec, request("GET", "/api/content/blogs", "", map[string]string{"kind": "blogs"}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp []ItemResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(resp) != 2 || resp[0].ID != 2 {
		t.Errorf("resp = %+v", resp)
	}
	if resp[0].Tags == nil {
		t.Error("tags serialized as null, want empty array")
	}
}

func TestHandlerGetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := testBlogService(t)
		svc.getByIDFunc = func(ctx context.Context, id int64) (Item, error) {
			return Item{ID: id, Title: "Post", Slug: "post", Status: StatusPublished,
				Tags: []string{"go"}, CreatedAt: time.Now(), UpdatedAt: time.Now()}, nil
		}
		h := newTestHandler(t, svc)

		rec := httptest.NewRecorder()
		h.GetByID(rec, request("GET", "/api/content/blogs/5", "",
			map[string]string{"kind": "blogs", "id": "5"}))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var resp ItemResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if resp.ID != 5 || resp.Slug != "post" {
			t.Errorf("resp = %+v", resp)
		}
	})

	t.Run("absent row maps to 404", func(t *testing.T) {
		h := newTestHandler(t, testBlogService(t))

		rec := httptest.NewRecorder()
		h.GetByID(rec, request("GET", "/api/content/blogs/99", "",
			map[string]string{"kind": "blogs", "id": "99"}))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("non-numeric id maps to 400", func(t *testing.T) {
		h := newTestHandler(t, testBlogService(t))

		rec := httptest.NewRecorder()
		h.GetByID(rec, request("GET", "/api/content/blogs/abc", "",
			map[string]string{"kind": "blogs", "id": "abc"}))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHandlerCreate(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := testBlogService(t)
		svc.createFunc = func(ctx context.Context, item Item) (Item, error) {
			item.ID = 10
			item.Tags = []string{"go", "pgx"}
			return item, nil
		}
		h := newTestHandler(t, svc)

		rec := httptest.NewRecorder()
		h.Create(rec, request("POST", "/api/content/blogs",
			`{"title":"New Post","tags":["go","pgx"]}`,
			map[string]string{"kind": "blogs"}))

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
		}

		var resp ItemResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if resp.ID != 10 || len(resp.Tags) != 2 {
			t.Errorf("resp = %+v", resp)
		}
	})

	t.Run("slug conflict maps to 409", func(t *testing.T) {
		svc := testBlogService(t)
		svc.createFunc = func(ctx context.Context, item Item) (Item, error) {
			return Item{}, errx.E("op", errx.Conflict, errors.New("duplicate"))
		}
		h := newTestHandler(t, svc)

		rec := httptest.NewRecorder()
		h.Create(rec, request("POST", "/api/content/blogs",
			`{"title":"t","slug":"taken"}`, map[string]string{"kind": "blogs"}))

		if rec.Code != http.StatusConflict {
			t.Errorf("status = %d, want 409", rec.Code)
		}
	})

	t.Run("malformed body maps to 400", func(t *testing.T) {
		h := newTestHandler(t, testBlogService(t))

		rec := httptest.NewRecorder()
		h.Create(rec, request("POST", "/api/content/blogs",
			`{"title":`, map[string]string{"kind": "blogs"}))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHandlerUpdate(t *testing.T) {
	t.Run("missing row maps to 404", func(t *testing.T) {
		svc := testBlogService(t)
		svc.updateFunc = func(ctx context.Context, id int64, item Item) (bool, error) {
			return false, nil
		}
		h := newTestHandler(t, svc)

		rec := httptest.NewRecorder()
		h.Update(rec, request("PUT", "/api/content/blogs/7",
			`{"title":"t","slug":"t"}`, map[string]string{"kind": "blogs", "id": "7"}))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("affected row maps to 204", func(t *testing.T) {
		h := newTestHandler(t, testBlogService(t))

		rec := httptest.NewRecorder()
		h.Update(rec, request("PUT", "/api/content/blogs/7",
			`{"title":"t","slug":"t"}`, map[string]string{"kind": "blogs", "id": "7"}))

		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
	})
}

func TestHandlerDelete(t *testing.T) {
	t.Run("missing row maps to 404", func(t *testing.T) {
		svc := testBlogService(t)
		svc.deleteFunc = func(ctx context.Context, id int64) (bool, error) {
			return false, nil
		}
		h := newTestHandler(t, svc)

		rec := httptest.NewRecorder()
		h.Delete(rec, request("DELETE", "/api/content/blogs/7", "",
			map[string]string{"kind": "blogs", "id": "7"}))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("deleted row maps to 204", func(t *testing.T) {
		h := newTestHandler(t, testBlogService(t))

		rec := httptest.NewRecorder()
		h.Delete(rec, request("DELETE", "/api/content/blogs/7", "",
			map[string]string{"kind": "blogs", "id": "7"}))

		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
	})
}

func TestHandlerIncrement(t *testing.T) {
	svc := testBlogService(t)
	var got int64
	svc.incrementFunc = func(ctx context.Context, id int64) (bool, error) {
		got = id
		return true, nil
	}
	h := newTestHandler(t, svc)

	rec := httptest.NewRecorder()
	h.Increment(rec, request("POST", "/api/content/blogs/3/count", "",
		map[string]string{"kind": "blogs", "id": "3"}))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if got != 3 {
		t.Errorf("increment called with id %d", got)
	}
}
