package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/cdmstr-kev/news-explorer-backend/internal/auth"
	"github.com/cdmstr-kev/news-explorer-backend/internal/model"
	"github.com/cdmstr-kev/news-explorer-backend/internal/repository"
	"github.com/cdmstr-kev/news-explorer-backend/internal/service"
)

// memArticleStore is an in-memory ArticleStore for handler tests.
type memArticleStore struct {
	mu       sync.Mutex
	articles map[string]*model.Article
}

func newMemArticleStore() *memArticleStore {
	return &memArticleStore{articles: make(map[string]*model.Article)}
}

func (s *memArticleStore) CreateArticle(ctx context.Context, article *model.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *article
	s.articles[article.ID] = &copied
	return nil
}

func (s *memArticleStore) GetArticleByID(ctx context.Context, id string) (*model.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	article, ok := s.articles[id]
	if !ok {
		return nil, repository.ErrArticleNotFound
	}
	copied := *article
	return &copied, nil
}

func (s *memArticleStore) ListArticlesByOwner(ctx context.Context, ownerID string) ([]*model.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Article
	for _, article := range s.articles {
		if article.Owner == ownerID {
			copied := *article
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *memArticleStore) DeleteArticle(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.articles[id]; !ok {
		return repository.ErrArticleNotFound
	}
	delete(s.articles, id)
	return nil
}

func newArticleTestEnv(t *testing.T) (*ArticleHandler, *memArticleStore) {
	t.Helper()
	store := newMemArticleStore()
	return NewArticleHandler(service.NewArticleService(store), testLogger()), store
}

const validArticleBody = `{
	"keyword": "climate",
	"title": "Warming oceans",
	"text": "A long read about ocean temperatures.",
	"date": "2024-03-01",
	"source": "Ocean Weekly",
	"link": "https://news.example.com/warming-oceans",
	"image": "https://news.example.com/warming-oceans.jpg"
}`

func authedRequest(method, path, body, userID string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	return req.WithContext(auth.ContextWithUserID(req.Context(), userID))
}

// deleteRequest routes through chi so the {id} URL param resolves.
func deleteRequest(h *ArticleHandler, id, userID string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Delete("/articles/{id}", h.Delete)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, authedRequest(http.MethodDelete, "/articles/"+id, "", userID))
	return rec
}

func TestCreateArticle(t *testing.T) {
	h, store := newArticleTestEnv(t)
	owner := model.NewID()

	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(http.MethodPost, "/articles", validArticleBody, owner))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		ID    string `json:"id"`
		Owner string `json:"owner"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Owner != owner {
		t.Errorf("owner = %q, want %q", body.Owner, owner)
	}
	if body.Title != "Warming oceans" {
		t.Errorf("unexpected title: %q", body.Title)
	}
	if _, ok := store.articles[body.ID]; !ok {
		t.Error("article not persisted")
	}
}

func TestCreateArticle_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"keyword":"k","text":"t","date":"d","source":"s","link":"https://a.com","image":"https://a.com/i.jpg"}`},
		{"bad link", `{"keyword":"k","title":"t","text":"t","date":"d","source":"s","link":"not a url","image":"https://a.com/i.jpg"}`},
		{"bad image", `{"keyword":"k","title":"t","text":"t","date":"d","source":"s","link":"https://a.com","image":"::"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, store := newArticleTestEnv(t)
			rec := httptest.NewRecorder()
			h.Create(rec, authedRequest(http.MethodPost, "/articles", tt.body, model.NewID()))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			if len(store.articles) != 0 {
				t.Error("store must not be touched on a schema violation")
			}
		})
	}
}

func TestListArticles_EmptyIsArray(t *testing.T) {
	h, _ := newArticleTestEnv(t)

	rec := httptest.NewRecorder()
	h.List(rec, authedRequest(http.MethodGet, "/articles", "", model.NewID()))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var list []json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("list response is not an array: %q", rec.Body.String())
	}
	if len(list) != 0 {
		t.Errorf("expected empty list, got %d entries", len(list))
	}
}

func TestListArticles_OnlyOwn(t *testing.T) {
	h, _ := newArticleTestEnv(t)
	owner, stranger := model.NewID(), model.NewID()

	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(http.MethodPost, "/articles", validArticleBody, owner))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.List(rec, authedRequest(http.MethodGet, "/articles", "", stranger))
	var strangerList []json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &strangerList); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(strangerList) != 0 {
		t.Errorf("stranger must not see the owner's articles, got %d", len(strangerList))
	}

	rec = httptest.NewRecorder()
	h.List(rec, authedRequest(http.MethodGet, "/articles", "", owner))
	var ownerList []json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &ownerList); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(ownerList) != 1 {
		t.Errorf("owner list has %d entries, want 1", len(ownerList))
	}
}

func TestDeleteArticle(t *testing.T) {
	h, store := newArticleTestEnv(t)
	owner := model.NewID()

	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(http.MethodPost, "/articles", validArticleBody, owner))
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode created article: %v", err)
	}

	rec = deleteRequest(h, created.ID, owner)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if msg := decodeMessage(t, rec); msg != "Article deleted successfully!" {
		t.Errorf("unexpected message: %q", msg)
	}
	if len(store.articles) != 0 {
		t.Error("article still present after delete")
	}
}

func TestDeleteArticle_NotOwner(t *testing.T) {
	h, store := newArticleTestEnv(t)
	owner, stranger := model.NewID(), model.NewID()

	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(http.MethodPost, "/articles", validArticleBody, owner))
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode created article: %v", err)
	}

	rec = deleteRequest(h, created.ID, stranger)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "You cannot delete this article!" {
		t.Errorf("unexpected message: %q", msg)
	}
	if _, ok := store.articles[created.ID]; !ok {
		t.Error("article must remain after a forbidden delete")
	}
}

func TestDeleteArticle_IDErrors(t *testing.T) {
	h, _ := newArticleTestEnv(t)
	requester := model.NewID()

	// Malformed id fails before any store access.
	rec := deleteRequest(h, "not-hex", requester)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "invalid article ID" {
		t.Errorf("unexpected message: %q", msg)
	}

	// Well-formed but unknown id is a 404, not a 400.
	rec = deleteRequest(h, model.NewID(), requester)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "Article not found" {
		t.Errorf("unexpected message: %q", msg)
	}
}
