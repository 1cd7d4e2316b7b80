package dto

import "github.com/arjunrk/feeledger/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"accounts@college.edu"`
	Password string `json:"password" binding:"required" example:"secret"`
}

// LoginResponse carries the issued token and the authenticated user
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expiresIn" example:"3600"`
	User      *models.User `json:"user"`
}
