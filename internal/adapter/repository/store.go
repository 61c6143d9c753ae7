// Package repository implementa os repositórios sobre PostgreSQL com pgx.
package repository

import (
	"context"

	"github.com/hugohenrick/pos-inventario/internal/domain/product"
	"github.com/hugohenrick/pos-inventario/internal/domain/sale"
	"github.com/hugohenrick/pos-inventario/internal/domain/user"
	"github.com/hugohenrick/pos-inventario/internal/infrastructure/database"
	pkgrepo "github.com/hugohenrick/pos-inventario/pkg/repository"
	"github.com/jackc/pgx/v5"
)

// Store implementa repository.Store sobre o pool; Within abre uma transação
type Store struct {
	db *database.PostgresDB
}

var _ pkgrepo.Store = (*Store)(nil)

// NewStore cria uma nova instância de Store
func NewStore(db *database.PostgresDB) *Store {
	return &Store{db: db}
}

// Products implementa repository.Repositories fora de transação
func (s *Store) Products() product.Repository {
	return NewProductRepository(s.db.Pool())
}

// Movements implementa repository.Repositories fora de transação
func (s *Store) Movements() product.MovementRepository {
	return NewMovementRepository(s.db.Pool())
}

// Sales implementa repository.Repositories fora de transação
func (s *Store) Sales() sale.Repository {
	return NewSaleRepository(s.db.Pool())
}

// Users devolve o repositório de usuários
func (s *Store) Users() user.Repository {
	return NewUserRepository(s.db.Pool())
}

// Within executa fn numa transação; qualquer erro faz rollback
func (s *Store) Within(ctx context.Context, fn pkgrepo.TxFunc) error {
	return s.db.Transaction(ctx, func(tx pgx.Tx) error {
		return fn(ctx, txRepositories{tx: tx})
	})
}

type txRepositories struct {
	tx pgx.Tx
}

func (t txRepositories) Products() product.Repository {
	return NewProductRepository(t.tx)
}

func (t txRepositories) Movements() product.MovementRepository {
	return NewMovementRepository(t.tx)
}

func (t txRepositories) Sales() sale.Repository {
	return NewSaleRepository(t.tx)
}
