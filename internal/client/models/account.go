package models

import "time"

// Account mirrors the server's account representation.
type Account struct {
	ID        string    `json:"id"`
	Number    string    `json:"number"`
	Holder    string    `json:"holder"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AccountInput struct {
	Number  string `json:"number"`
	Holder  string `json:"holder"`
	Balance *int64 `json:"balance"`
}

type AccountUpdate struct {
	Holder  string `json:"holder"`
	Balance *int64 `json:"balance"`
}

// LoginResult is the body of a successful login.
type LoginResult struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}
