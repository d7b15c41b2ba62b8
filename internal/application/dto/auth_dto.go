package dto

import "time"

// RegisterRequest input for merchant registration (password is hashed in
// the use case).
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest input for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// MerchantResponse merchant output (never includes the password hash).
type MerchantResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse JWT plus the authenticated merchant.
type LoginResponse struct {
	Token    string           `json:"token"`
	Merchant MerchantResponse `json:"merchant"`
}
