package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cdmstr-kev/news-explorer-backend/internal/model"
	"github.com/cdmstr-kev/news-explorer-backend/internal/repository"
)

// Article service errors.
var (
	ErrArticleNotFound = errors.New("article not found")
	ErrNotArticleOwner = errors.New("requester does not own the article")
)

// ArticleStore is the persistence contract the article service depends on.
// ListArticlesByOwner returns newest-first by creation order.
type ArticleStore interface {
	CreateArticle(ctx context.Context, article *model.Article) error
	GetArticleByID(ctx context.Context, id string) (*model.Article, error)
	ListArticlesByOwner(ctx context.Context, ownerID string) ([]*model.Article, error)
	DeleteArticle(ctx context.Context, id string) error
}

// ArticleService handles saved-article business logic.
type ArticleService struct {
	store ArticleStore
}

// NewArticleService creates a new ArticleService.
func NewArticleService(store ArticleStore) *ArticleService {
	return &ArticleService{store: store}
}

// CreateArticleInput defines input for saving an article.
type CreateArticleInput struct {
	Keyword string
	Title   string
	Text    string
	Date    string
	Source  string
	Link    string
	Image   string
}

// CreateArticle persists a new article owned by ownerID.
func (s *ArticleService) CreateArticle(ctx context.Context, input CreateArticleInput, ownerID string) (*model.Article, error) {
	ownerID = model.NormalizeID(ownerID)
	if !model.IsValidID(ownerID) {
		return nil, ErrInvalidID
	}

	article := &model.Article{
		ID:        model.NewID(),
		Keyword:   input.Keyword,
		Title:     input.Title,
		Text:      input.Text,
		Date:      input.Date,
		Source:    input.Source,
		Link:      input.Link,
		Image:     input.Image,
		Owner:     ownerID,
		CreatedAt: time.Now().UTC(),
	}

	if err := article.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.store.CreateArticle(ctx, article); err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	return article, nil
}

// ListArticles returns all articles saved by ownerID, newest first.
// An empty result is a valid, non-error outcome.
func (s *ArticleService) ListArticles(ctx context.Context, ownerID string) ([]*model.Article, error) {
	ownerID = model.NormalizeID(ownerID)
	if !model.IsValidID(ownerID) {
		return nil, ErrInvalidID
	}

	articles, err := s.store.ListArticlesByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	if articles == nil {
		articles = []*model.Article{}
	}
	return articles, nil
}

// DeleteArticle removes an article after confirming the requester owns it.
// The ownership check runs strictly before the delete. Both ids are
// normalized to canonical hex form before comparison.
func (s *ArticleService) DeleteArticle(ctx context.Context, id, requesterID string) error {
	id = model.NormalizeID(id)
	if !model.IsValidID(id) {
		return ErrInvalidID
	}

	article, err := s.store.GetArticleByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			return ErrArticleNotFound
		}
		return fmt.Errorf("failed to get article: %w", err)
	}

	if model.NormalizeID(article.Owner) != model.NormalizeID(requesterID) {
		return ErrNotArticleOwner
	}

	if err := s.store.DeleteArticle(ctx, id); err != nil {
		// A concurrent delete by the same owner may win the race; the
		// second request then legitimately observes not-found.
		if errors.Is(err, repository.ErrArticleNotFound) {
			return ErrArticleNotFound
		}
		return fmt.Errorf("failed to delete article: %w", err)
	}

	return nil
}
