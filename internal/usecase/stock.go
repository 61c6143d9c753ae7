package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/pos-inventario/internal/domain/product"
	"github.com/hugohenrick/pos-inventario/pkg/apperror"
	"github.com/hugohenrick/pos-inventario/pkg/metrics"
	"github.com/hugohenrick/pos-inventario/pkg/repository"
)

// ErrStockTargetMissing indica ajuste de estoque para um produto inexistente
var ErrStockTargetMissing = errors.New("producto inexistente durante ajuste de stock")

// Adjustment descreve uma variação de quantidade
type Adjustment struct {
	Barcode string
	Delta   int
	Kind    product.MovementKind
	SaleID  *int64
}

// StockControl é o único caminho que altera a quantidade de um produto.
// Cada alteração gera uma movimentação na mesma transação.
type StockControl struct {
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewStockControl cria um StockControl; m pode ser nil
func NewStockControl(m *metrics.Metrics) *StockControl {
	return &StockControl{metrics: m, now: time.Now}
}

// Apply soma adj.Delta à quantidade, nunca abaixo de zero
func (s *StockControl) Apply(ctx context.Context, tx repository.Repositories, adj Adjustment) (*product.Product, error) {
	p, err := tx.Products().FindByBarcodeForUpdate(ctx, adj.Barcode)
	if errors.Is(err, product.ErrNotFound) {
		return nil, apperror.Internal("Inconsistencia interna de inventario",
			fmt.Errorf("%w: %s", ErrStockTargetMissing, adj.Barcode))
	}
	if err != nil {
		return nil, persistence(err)
	}

	previous, err := p.ApplyDelta(adj.Delta)
	if err != nil {
		return nil, apperror.Validation("Ajuste de stock inválido", err)
	}
	return s.persist(ctx, tx, p, previous, adj)
}

// Set define a quantidade absoluta de um produto já bloqueado, registrando um ajuste
func (s *StockControl) Set(ctx context.Context, tx repository.Repositories, p *product.Product, quantity int) (*product.Product, error) {
	if quantity < 0 {
		return nil, apperror.Validation("Ajuste de stock inválido", product.ErrNegativeQuantity)
	}
	previous := p.Quantity
	p.Quantity = quantity
	return s.persist(ctx, tx, p, previous, Adjustment{
		Barcode: p.Barcode,
		Delta:   quantity - previous,
		Kind:    product.MovementAdjustment,
	})
}

// Opening registra a quantidade inicial de um produto recém-criado
func (s *StockControl) Opening(ctx context.Context, tx repository.Repositories, p *product.Product) error {
	if p.Quantity == 0 {
		return nil
	}
	return s.record(ctx, tx, p, 0, Adjustment{Barcode: p.Barcode, Delta: p.Quantity, Kind: product.MovementAdjustment})
}

func (s *StockControl) persist(ctx context.Context, tx repository.Repositories, p *product.Product, previous int, adj Adjustment) (*product.Product, error) {
	p.UpdatedAt = s.now()
	if err := tx.Products().Update(ctx, p); err != nil {
		return nil, productErr(err)
	}
	if err := s.record(ctx, tx, p, previous, adj); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *StockControl) record(ctx context.Context, tx repository.Repositories, p *product.Product, previous int, adj Adjustment) error {
	if p.Quantity == previous {
		return nil
	}
	m := &product.Movement{
		Barcode:          p.Barcode,
		Kind:             adj.Kind,
		Delta:            p.Quantity - previous,
		PreviousQuantity: previous,
		NewQuantity:      p.Quantity,
		SaleID:           adj.SaleID,
		CreatedAt:        s.now(),
	}
	if err := tx.Movements().Create(ctx, m); err != nil {
		return persistence(err)
	}
	s.metrics.StockAdjusted(string(adj.Kind))
	return nil
}
