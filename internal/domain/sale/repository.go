package sale

import (
	"context"
)

// Repository define a interface para operações de repositório de vendas
type Repository interface {
	// Create insere a venda e preenche o ID gerado
	Create(ctx context.Context, s *Sale) error

	// FindByID busca uma venda pelo ID
	FindByID(ctx context.Context, id int64) (*Sale, error)

	// List lista as vendas, mais recentes primeiro
	List(ctx context.Context) ([]*Sale, error)

	// Update persiste observação e documento de transferência
	Update(ctx context.Context, s *Sale) error

	// Delete remove uma venda
	Delete(ctx context.Context, id int64) error
}
