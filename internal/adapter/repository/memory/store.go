// Package memory implementa os repositórios em memória, usados em testes e
// quando STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"sync"

	"github.com/hugohenrick/pos-inventario/internal/domain/product"
	"github.com/hugohenrick/pos-inventario/internal/domain/sale"
	"github.com/hugohenrick/pos-inventario/internal/domain/user"
	"github.com/hugohenrick/pos-inventario/pkg/repository"
)

type state struct {
	products       map[string]*product.Product
	movements      []*product.Movement
	sales          map[int64]*sale.Sale
	nextSaleID     int64
	nextMovementID int64
}

func newState() *state {
	return &state{
		products: make(map[string]*product.Product),
		sales:    make(map[int64]*sale.Sale),
	}
}

func (s *state) clone() *state {
	c := &state{
		products:       make(map[string]*product.Product, len(s.products)),
		movements:      make([]*product.Movement, 0, len(s.movements)),
		sales:          make(map[int64]*sale.Sale, len(s.sales)),
		nextSaleID:     s.nextSaleID,
		nextMovementID: s.nextMovementID,
	}
	for k, p := range s.products {
		c.products[k] = p.Clone()
	}
	for _, m := range s.movements {
		mc := *m
		c.movements = append(c.movements, &mc)
	}
	for k, v := range s.sales {
		c.sales[k] = v.Clone()
	}
	return c
}

// access executa fn sobre o estado visível ao repositório
type access func(fn func(st *state) error) error

// Store guarda produtos, vendas e movimentações em memória.
// Within serializa as transações e publica o novo estado só no commit.
type Store struct {
	mu    sync.Mutex
	state *state
	users *userRepository
}

// NewStore cria um Store vazio
func NewStore() *Store {
	return &Store{
		state: newState(),
		users: newUserRepository(),
	}
}

var _ repository.Store = (*Store)(nil)

func (s *Store) shared(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// Products implementa repository.Repositories
func (s *Store) Products() product.Repository {
	return &productRepository{access: s.shared}
}

// Movements implementa repository.Repositories
func (s *Store) Movements() product.MovementRepository {
	return &movementRepository{access: s.shared}
}

// Sales implementa repository.Repositories
func (s *Store) Sales() sale.Repository {
	return &saleRepository{access: s.shared}
}

// Users devolve o repositório de usuários
func (s *Store) Users() user.Repository {
	return s.users
}

// Within implementa repository.Store. Dentro de fn use apenas os repositórios de tx.
func (s *Store) Within(ctx context.Context, fn repository.TxFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.state.clone()
	tx := txRepositories{access: func(f func(st *state) error) error { return f(draft) }}

	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.state = draft
	return nil
}

type txRepositories struct {
	access access
}

func (t txRepositories) Products() product.Repository {
	return &productRepository{access: t.access}
}

func (t txRepositories) Movements() product.MovementRepository {
	return &movementRepository{access: t.access}
}

func (t txRepositories) Sales() sale.Repository {
	return &saleRepository{access: t.access}
}
