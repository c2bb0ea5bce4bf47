package dto

import "github.com/google/uuid"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"`
	User        UserResponse `json:"user"`
}

type UserResponse struct {
	Id         uuid.UUID `json:"id"`
	TelegramId *int64    `json:"telegram_id,omitempty"`
	Email      *string   `json:"email,omitempty"`
	FullName   string    `json:"full_name"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
}

// MiniAppSessionRequest carries the signed Telegram payload the mini-app
// presents instead of a bearer token.
type MiniAppSessionRequest struct {
	InitData string `json:"init_data" validate:"required"`
}

type MiniAppSessionResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"`
	User        UserResponse `json:"user"`
	Banned      bool         `json:"banned"`
}
