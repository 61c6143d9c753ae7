package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/hugohenrick/pos-inventario/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Tipos de evento publicados após o commit
const (
	EventSaleRegistered   = "sale.registered"
	EventProductExhausted = "product.exhausted"
)

// ErrIdempotencyKeyReused indica uma chave de idempotência já usada por um pedido diferente
var ErrIdempotencyKeyReused = fmt.Errorf("%w: clave de idempotencia usada con otra venta", apperror.ErrTxConflict)

// Event é uma notificação de domínio entregue ao EventPublisher
type Event struct {
	Type       string
	Key        string
	OccurredAt time.Time
	Payload    interface{}
}

// SaleRegisteredPayload descreve uma venda confirmada
type SaleRegisteredPayload struct {
	SaleID        int64           `json:"ventaId"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"tipoPago"`
	Items         []SaleEventItem `json:"productos"`
	SoldAt        time.Time       `json:"fechaVenta"`
}

// SaleEventItem é uma linha da venda no evento
type SaleEventItem struct {
	Barcode  string          `json:"codigoBarras"`
	Quantity int             `json:"cantidad"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// ProductExhaustedPayload avisa que um produto ficou sem estoque
type ProductExhaustedPayload struct {
	Barcode string `json:"codigoBarras"`
	SaleID  int64  `json:"ventaId"`
}

// EventPublisher entrega eventos a um broker
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher descarta os eventos
type NopPublisher struct{}

// Publish implementa EventPublisher
func (NopPublisher) Publish(context.Context, Event) error { return nil }

// IdempotencyStore guarda chaves de idempotência do registro de vendas.
// Cada chave carrega a impressão do pedido que a reservou.
// Reserve devolve reserved=true quando a chave é nova; caso contrário saleID
// traz a venda já registrada, ou 0 se a primeira requisição ainda está em curso.
// Uma chave reservada com outra impressão devolve ErrIdempotencyKeyReused.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key, fingerprint string) (saleID int64, reserved bool, err error)
	Complete(ctx context.Context, key, fingerprint string, saleID int64) error
	Release(ctx context.Context, key string) error
}
