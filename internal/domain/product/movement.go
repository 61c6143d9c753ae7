package product

import "time"

// MovementKind identifica a origem de uma movimentação de estoque
type MovementKind string

// Constantes para MovementKind
const (
	MovementSale       MovementKind = "venta"
	MovementRestock    MovementKind = "reposicion"
	MovementAdjustment MovementKind = "ajuste"
)

// Movement registra uma alteração de quantidade de um produto
type Movement struct {
	ID               int64
	Barcode          string
	Kind             MovementKind
	Delta            int
	PreviousQuantity int
	NewQuantity      int
	SaleID           *int64
	CreatedAt        time.Time
}
