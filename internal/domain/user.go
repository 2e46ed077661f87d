package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account
type User struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"passwordHash"`
	History      []HistoryEntry `json:"history"`
	ResetCode    *string        `json:"resetCode,omitempty"`
	ResetExpiry  *time.Time     `json:"resetExpiry,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// HistoryEntry is one recorded exchange between the user and the assistant.
// Entries are immutable once appended and kept in insertion order.
type HistoryEntry struct {
	UserMessage string    `json:"userMessage"`
	AIReply     string    `json:"aiReply"`
	Timestamp   time.Time `json:"timestamp"`
}

// Profile is the public view of a user, safe to return to clients
type Profile struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// Profile returns the client-facing view of the user
func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Name: u.Name, Email: u.Email}
}

// SignupRequest represents account registration data
type SignupRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=1,max=72"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries an issued session token
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// ResetRequest asks for a password reset code
type ResetRequest struct {
	Email string `json:"email" validate:"required"`
}

// CompleteResetRequest consumes a reset code and sets a new password
type CompleteResetRequest struct {
	Email       string `json:"email" validate:"required"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" validate:"required,min=1,max=72"`
}

// GenerateRequest asks for icebreaker suggestions
type GenerateRequest struct {
	Context     string `json:"context" validate:"required"`
	Personality string `json:"personality" validate:"required"`
}

// SuggestRequest asks for reply suggestions to a received message
type SuggestRequest struct {
	Message string `json:"message" validate:"required"`
}

// ChatRequest is one turn of a practice conversation
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}
