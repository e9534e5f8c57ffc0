package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Article is a news article saved by a user.
// Owner references the saving user and is immutable after creation.
type Article struct {
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

// Validate runs store-level schema checks before the record is persisted.
func (a Article) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.ID, validation.Required, validation.By(checkID)),
		validation.Field(&a.Keyword, validation.Required),
		validation.Field(&a.Title, validation.Required),
		validation.Field(&a.Text, validation.Required),
		validation.Field(&a.Date, validation.Required),
		validation.Field(&a.Source, validation.Required),
		validation.Field(&a.Link, validation.Required, is.URL),
		validation.Field(&a.Image, validation.Required, is.URL),
		validation.Field(&a.Owner, validation.Required, validation.By(checkID)),
	)
}
