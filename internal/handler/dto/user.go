// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/cdmstr-kev/news-explorer-backend/internal/model"
)

// MinPasswordLength is the minimum accepted password length at signup.
const MinPasswordLength = 8

// SignupRequest represents the request body for account registration.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// Validate checks the signup schema before the request reaches the service.
func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(MinPasswordLength, 0)),
		validation.Field(&r.Username, validation.Required,
			validation.Length(model.MinUsernameLength, model.MaxUsernameLength)),
	)
}

// SigninRequest represents the request body for login.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the signin schema. Password length is not re-checked on
// login; only presence matters for a credentials check.
func (r SigninRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// UserResponse represents a user in API responses. There is deliberately no
// password field to map from.
type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// SignupResponse is the 201 body for a successful registration.
type SignupResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// TokenResponse is the 200 body for a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

// MessageResponse is the uniform envelope for errors and confirmations.
type MessageResponse struct {
	Message string `json:"message"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
	}
}
