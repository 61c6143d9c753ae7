package dto

import (
	"time"

	"github.com/hugohenrick/pos-inventario/internal/domain/user"
)

// RegisterUserRequest representa os dados de cadastro de um usuário
type RegisterUserRequest struct {
	Name       string `json:"nombre" binding:"required" example:"Ana Torres"`
	NationalID string `json:"cedula" binding:"required" example:"1712345678"`
	Phone      string `json:"telefono" binding:"required" example:"0991234567"`
	Email      string `json:"email" binding:"required,email" example:"ana@tienda.ec"`
	Password   string `json:"password" binding:"required,min=6,max=72" example:"secreto123"`
}

// ToRegistration converte para o cadastro do domínio
func (r RegisterUserRequest) ToRegistration() user.Registration {
	return user.Registration{
		Name:       r.Name,
		NationalID: r.NationalID,
		Phone:      r.Phone,
		Email:      r.Email,
		Password:   r.Password,
	}
}

// UserResponse representa a resposta com dados de um usuário; a senha nunca sai
type UserResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"nombre"`
	NationalID string    `json:"cedula"`
	Phone      string    `json:"telefono"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"createdAt"`
}

// RegisterUserResponse é a resposta de /users/registro
type RegisterUserResponse struct {
	Message string       `json:"msg"`
	User    UserResponse `json:"usuario"`
}

// ToUserResponse converte um usuário do domínio para DTO de resposta
func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		NationalID: u.NationalID,
		Phone:      u.Phone,
		Email:      u.Email,
		CreatedAt:  u.CreatedAt,
	}
}
