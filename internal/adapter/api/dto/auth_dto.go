package dto

import (
	"time"
)

// LoginRequest representa os dados para login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ana@tienda.ec"`
	Password string `json:"password" binding:"required" example:"secreto123"`
}

// LoginResponse representa a resposta de login bem-sucedido
type LoginResponse struct {
	Name      string    `json:"nombre"`
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Phone     string    `json:"telefono"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiraEn"`
}
