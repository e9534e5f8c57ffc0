// Package model defines domain entities for the application.
package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Username length bounds.
const (
	MinUsernameLength = 2
	MaxUsernameLength = 30
)

// User represents a registered account.
// PasswordHash never appears in JSON output and is omitted from default
// store projections; only the credentials lookup loads it.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Username     string    `json:"username"`
	CreatedAt    time.Time `json:"created_at"`
}

// Validate runs store-level schema checks before the record is persisted.
// The HTTP layer validates request payloads separately; this is the last
// line of defense in front of the store.
func (u User) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.ID, validation.Required, validation.By(checkID)),
		validation.Field(&u.Email, validation.Required, is.Email),
		validation.Field(&u.PasswordHash, validation.Required),
		validation.Field(&u.Username, validation.Required, validation.Length(MinUsernameLength, MaxUsernameLength)),
	)
}

// NormalizeEmail lowercases and trims an email address so lookups and the
// unique index operate on a canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
