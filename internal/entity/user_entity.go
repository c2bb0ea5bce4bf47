package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string
type UserStatus string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	UserStatusActive UserStatus = "active"
	UserStatusBanned UserStatus = "banned"
)

// User covers both mini-app end users (identified by TelegramId) and
// console admins (credential login).
type User struct {
	Id           uuid.UUID
	TelegramId   *int64
	Email        *string
	FullName     string
	PasswordHash *string
	Role         UserRole
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
