package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/cdmstr-kev/news-explorer-backend/internal/model"
)

// CreateArticleRequest represents the request body for saving an article.
// Date is carried verbatim as the client-supplied publication date string.
type CreateArticleRequest struct {
	Keyword string `json:"keyword"`
	Title   string `json:"title"`
	Text    string `json:"text"`
	Date    string `json:"date"`
	Source  string `json:"source"`
	Link    string `json:"link"`
	Image   string `json:"image"`
}

// Validate checks the article schema before the request reaches the service.
func (r CreateArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Keyword, validation.Required),
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Text, validation.Required),
		validation.Field(&r.Date, validation.Required),
		validation.Field(&r.Source, validation.Required),
		validation.Field(&r.Link, validation.Required, is.URL),
		validation.Field(&r.Image, validation.Required, is.URL),
	)
}

// ArticleResponse represents a saved article in API responses.
type ArticleResponse struct {
	ID        string    `json:"id"`
	Keyword   string    `json:"keyword"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Date      string    `json:"date"`
	Source    string    `json:"source"`
	Link      string    `json:"link"`
	Image     string    `json:"image"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
}

// ToArticleResponse converts an Article model to ArticleResponse DTO.
func ToArticleResponse(article *model.Article) *ArticleResponse {
	return &ArticleResponse{
		ID:        article.ID,
		Keyword:   article.Keyword,
		Title:     article.Title,
		Text:      article.Text,
		Date:      article.Date,
		Source:    article.Source,
		Link:      article.Link,
		Image:     article.Image,
		Owner:     article.Owner,
		CreatedAt: article.CreatedAt,
	}
}

// ToArticleListResponse converts a slice of Article models for list output.
// The list endpoint returns a bare JSON array, never null.
func ToArticleListResponse(articles []*model.Article) []ArticleResponse {
	responses := make([]ArticleResponse, len(articles))
	for i, article := range articles {
		responses[i] = *ToArticleResponse(article)
	}
	return responses
}
