package user

import (
	"context"
)

// Repository define a interface para operações de repositório de usuários
type Repository interface {
	// Create cria um novo usuário
	Create(ctx context.Context, u *User) error

	// FindByID busca um usuário pelo ID
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail busca um usuário pelo email já normalizado
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail verifica se o email já está cadastrado
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Delete remove um usuário do sistema
	Delete(ctx context.Context, id string) error
}
