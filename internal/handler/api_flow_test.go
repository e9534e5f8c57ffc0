package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cdmstr-kev/news-explorer-backend/internal/auth"
	"github.com/cdmstr-kev/news-explorer-backend/internal/middleware"
	"github.com/cdmstr-kev/news-explorer-backend/internal/service"
	"github.com/cdmstr-kev/news-explorer-backend/internal/token"
)

// newTestRouter wires handlers and the auth middleware the same way the
// production router does, against in-memory stores.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	tokens := token.NewService([]byte("flow-test-secret"), time.Hour)
	userSvc := service.NewUserService(newMemUserStore(), auth.NewHasher(auth.DefaultBcryptCost), tokens)
	articleSvc := service.NewArticleService(newMemArticleStore())

	logger := testLogger()
	userHandler := NewUserHandler(userSvc, logger)
	articleHandler := NewArticleHandler(articleSvc, logger)
	base := New()

	requireAuth := middleware.Auth(middleware.AuthConfig{
		Logger: logger,
		Tokens: tokens,
	})

	r := chi.NewRouter()
	r.NotFound(base.NotFound)
	r.MethodNotAllowed(base.MethodNotAllowed)

	r.Post("/signup", userHandler.Signup)
	r.Post("/signin", userHandler.Signin)
	r.Post("/users/signup", userHandler.Signup)
	r.Post("/users/signin", userHandler.Signin)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/users/me", userHandler.Me)
		r.Get("/articles", articleHandler.List)
		r.Post("/articles", articleHandler.Create)
		r.Delete("/articles/{id}", articleHandler.Delete)
	})

	return r
}

type flowClient struct {
	t      *testing.T
	router http.Handler
}

func (c *flowClient) do(method, path, body, bearer string) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)
	return rec
}

func TestAPIFlow(t *testing.T) {
	c := &flowClient{t: t, router: newTestRouter(t)}

	// Protected routes reject anonymous requests.
	if rec := c.do(http.MethodGet, "/articles", "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous list: expected 401, got %d", rec.Code)
	}

	// Two accounts.
	for _, body := range []string{
		`{"email":"alice@example.com","password":"correcthorse","username":"alice"}`,
		`{"email":"bob@example.com","password":"batterystaple","username":"bob"}`,
	} {
		if rec := c.do(http.MethodPost, "/signup", body, ""); rec.Code != http.StatusCreated {
			t.Fatalf("signup: expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	signin := func(body string) string {
		rec := c.do(http.MethodPost, "/signin", body, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("signin: expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var resp struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Token == "" {
			t.Fatalf("signin: no token in %q", rec.Body.String())
		}
		return resp.Token
	}
	aliceToken := signin(`{"email":"alice@example.com","password":"correcthorse"}`)
	bobToken := signin(`{"email":"bob@example.com","password":"batterystaple"}`)

	// The prefixed route aliases serve the same handlers.
	if rec := c.do(http.MethodPost, "/users/signin",
		`{"email":"alice@example.com","password":"correcthorse"}`, ""); rec.Code != http.StatusOK {
		t.Fatalf("aliased signin: expected 200, got %d", rec.Code)
	}

	// Alice saves an article.
	rec := c.do(http.MethodPost, "/articles", validArticleBody, aliceToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create article: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("create article: bad body: %v", err)
	}

	// It shows up in her list, not in Bob's.
	var list []struct {
		ID string `json:"id"`
	}
	rec = c.do(http.MethodGet, "/articles", "", aliceToken)
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil || len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("alice's list: unexpected body %q", rec.Body.String())
	}
	rec = c.do(http.MethodGet, "/articles", "", bobToken)
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil || len(list) != 0 {
		t.Fatalf("bob's list: unexpected body %q", rec.Body.String())
	}

	// Bob cannot delete Alice's article.
	rec = c.do(http.MethodDelete, "/articles/"+created.ID, "", bobToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("stranger delete: expected 403, got %d", rec.Code)
	}

	// Alice can.
	rec = c.do(http.MethodDelete, "/articles/"+created.ID, "", aliceToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner delete: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Gone now.
	rec = c.do(http.MethodDelete, "/articles/"+created.ID, "", aliceToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("repeat delete: expected 404, got %d", rec.Code)
	}
	rec = c.do(http.MethodGet, "/articles", "", aliceToken)
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil || len(list) != 0 {
		t.Fatalf("final list: unexpected body %q", rec.Body.String())
	}

	// Profile still works with a verified token.
	rec = c.do(http.MethodGet, "/users/me", "", aliceToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", rec.Code)
	}
	var profile struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &profile); err != nil || profile.Email != "alice@example.com" {
		t.Fatalf("me: unexpected body %q", rec.Body.String())
	}

	// Unrouted paths get the uniform envelope.
	rec = c.do(http.MethodGet, "/nope", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unrouted: expected 404, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "Requested resource not found" {
		t.Errorf("unrouted: unexpected message %q", msg)
	}
}
