package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cdmstr-kev/news-explorer-backend/internal/model"
)

// ErrArticleNotFound reports a lookup or delete that matched no article.
var ErrArticleNotFound = errors.New("article not found")

// CreateArticle inserts a new article into the database.
func (r *Repository) CreateArticle(ctx context.Context, article *model.Article) error {
	query := `
		INSERT INTO articles (id, keyword, title, text, date, source, link, image, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		article.ID,
		article.Keyword,
		article.Title,
		article.Text,
		article.Date,
		article.Source,
		article.Link,
		article.Image,
		article.Owner,
		article.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}

	return nil
}

// GetArticleByID retrieves an article by its id.
func (r *Repository) GetArticleByID(ctx context.Context, id string) (*model.Article, error) {
	query := `
		SELECT id, keyword, title, text, date, source, link, image, owner_id, created_at
		FROM articles
		WHERE id = $1
	`

	article, err := scanArticle(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to get article by ID: %w", err)
	}

	return article, nil
}

// ListArticlesByOwner returns all articles saved by ownerID, newest first.
func (r *Repository) ListArticlesByOwner(ctx context.Context, ownerID string) ([]*model.Article, error) {
	query := `
		SELECT id, keyword, title, text, date, source, link, image, owner_id, created_at
		FROM articles
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	articles := make([]*model.Article, 0)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate articles: %w", err)
	}

	return articles, nil
}

// DeleteArticle removes an article by id.
// Returns ErrArticleNotFound if no row matched.
func (r *Repository) DeleteArticle(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrArticleNotFound
	}

	return nil
}

// scanArticle scans a single article row.
func scanArticle(row pgx.Row) (*model.Article, error) {
	var article model.Article
	err := row.Scan(
		&article.ID,
		&article.Keyword,
		&article.Title,
		&article.Text,
		&article.Date,
		&article.Source,
		&article.Link,
		&article.Image,
		&article.Owner,
		&article.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &article, nil
}
