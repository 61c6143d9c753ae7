package product

import (
	"context"
)

// Repository define a interface para operações de repositório de produtos
type Repository interface {
	// Create insere um novo produto
	Create(ctx context.Context, p *Product) error

	// FindByBarcode busca um produto pelo código de barras
	FindByBarcode(ctx context.Context, barcode string) (*Product, error)

	// FindByBarcodeForUpdate busca e bloqueia a linha até o fim da transação
	FindByBarcodeForUpdate(ctx context.Context, barcode string) (*Product, error)

	// ExistsByBarcode verifica se o código já está em uso
	ExistsByBarcode(ctx context.Context, barcode string) (bool, error)

	// ExistsByNormalizedName verifica se outro produto usa o mesmo nome normalizado
	ExistsByNormalizedName(ctx context.Context, normalized, exceptBarcode string) (bool, error)

	// List lista todos os produtos
	List(ctx context.Context) ([]*Product, error)

	// Update persiste nome, descrição, preço e quantidade
	Update(ctx context.Context, p *Product) error

	// Delete remove um produto pelo código de barras
	Delete(ctx context.Context, barcode string) error
}

// MovementRepository define o acesso ao histórico de movimentações
type MovementRepository interface {
	// Create registra uma movimentação
	Create(ctx context.Context, m *Movement) error

	// ListByBarcode lista as movimentações de um produto, mais recentes primeiro
	ListByBarcode(ctx context.Context, barcode string) ([]*Movement, error)
}
