package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cdmstr-kev/news-explorer-backend/internal/auth"
	"github.com/cdmstr-kev/news-explorer-backend/internal/handler/dto"
	"github.com/cdmstr-kev/news-explorer-backend/internal/model"
	"github.com/cdmstr-kev/news-explorer-backend/internal/service"
)

// ArticleHandler handles HTTP requests for saved-article operations.
type ArticleHandler struct {
	svc    *service.ArticleService
	logger *slog.Logger
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(svc *service.ArticleService, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /articles.
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	var req dto.CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	article, err := h.svc.CreateArticle(r.Context(), service.CreateArticleInput{
		Keyword: req.Keyword,
		Title:   req.Title,
		Text:    req.Text,
		Date:    req.Date,
		Source:  req.Source,
		Link:    req.Link,
		Image:   req.Image,
	}, userID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("article_created",
		"article_id", article.ID,
		"owner_id", article.Owner,
	)

	writeJSON(w, http.StatusCreated, dto.ToArticleResponse(article))
}

// List handles GET /articles. Returns the requester's saved articles as a
// bare array, newest first.
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	articles, err := h.svc.ListArticles(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToArticleListResponse(articles))
}

// Delete handles DELETE /articles/{id}.
// A malformed id is rejected before any store access; a well-formed id for
// someone else's article yields 403 with the article left intact.
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	id := model.NormalizeID(chi.URLParam(r, "id"))
	if !model.IsValidID(id) {
		writeError(w, http.StatusBadRequest, "invalid article ID")
		return
	}

	if err := h.svc.DeleteArticle(r.Context(), id, userID); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("article_deleted",
		"article_id", id,
		"owner_id", userID,
	)

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Article deleted successfully!"})
}
