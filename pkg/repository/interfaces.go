package repository

import (
	"context"

	"github.com/hugohenrick/pos-inventario/internal/domain/product"
	"github.com/hugohenrick/pos-inventario/internal/domain/sale"
)

// Repositories agrupa os repositórios que participam de uma mesma transação
type Repositories interface {
	// Products devolve o repositório de produtos
	Products() product.Repository

	// Movements devolve o repositório de movimentações de estoque
	Movements() product.MovementRepository

	// Sales devolve o repositório de vendas
	Sales() sale.Repository
}

// TxFunc é executada dentro de uma transação com repositórios ligados a ela
type TxFunc func(ctx context.Context, tx Repositories) error

// Store expõe os repositórios fora de transação e a unidade de trabalho.
// Within confirma quando fn devolve nil e desfaz tudo caso contrário.
type Store interface {
	Repositories

	// Within executa fn numa transação
	Within(ctx context.Context, fn TxFunc) error
}
