package dto

import (
	"errors"
	"time"

	"github.com/hugohenrick/pos-inventario/internal/domain/product"
	"github.com/shopspring/decimal"
)

// Erros de campos ausentes no corpo da requisição
var (
	ErrQuantityMissing = errors.New("cantidad es obligatoria")
	ErrPriceMissing    = errors.New("precio es obligatorio")
)

// AddProductRequest representa os dados para cadastro de um produto
type AddProductRequest struct {
	Name        string           `json:"nombreProducto" binding:"required" example:"Café molido 500g"`
	Description string           `json:"descripcion" binding:"required" example:"Café tostado y molido"`
	Quantity    *int             `json:"cantidad" binding:"required,min=0,max=2147483647" example:"24"`
	Price       *decimal.Decimal `json:"precio" binding:"required" swaggertype:"string" example:"4.75"`
}

// ToDraft converte a requisição para o rascunho do domínio
func (r AddProductRequest) ToDraft() (product.Draft, error) {
	var errs []error
	if r.Quantity == nil {
		errs = append(errs, ErrQuantityMissing)
	}
	if r.Price == nil {
		errs = append(errs, ErrPriceMissing)
	}
	if len(errs) > 0 {
		return product.Draft{}, errors.Join(errs...)
	}
	return product.Draft{
		Name:        r.Name,
		Description: r.Description,
		Quantity:    *r.Quantity,
		Price:       *r.Price,
	}, nil
}

// UpdateProductRequest representa uma atualização parcial; estado é sempre derivado e não é aceito
type UpdateProductRequest struct {
	Name        *string          `json:"nombreProducto,omitempty"`
	Description *string          `json:"descripcion,omitempty"`
	Quantity    *int             `json:"cantidad,omitempty" binding:"omitempty,min=0,max=2147483647"`
	Price       *decimal.Decimal `json:"precio,omitempty" swaggertype:"string"`
}

// ToPatch converte a requisição para o patch do domínio
func (r UpdateProductRequest) ToPatch() product.Patch {
	return product.Patch{
		Name:        r.Name,
		Description: r.Description,
		Quantity:    r.Quantity,
		Price:       r.Price,
	}
}

// RestockRequest representa um aumento de estoque
type RestockRequest struct {
	Barcode  string `json:"codigoBarras" binding:"required" example:"7501234567897"`
	Quantity int    `json:"cantidad" binding:"required,gt=0,max=2147483647" example:"10"`
}

// ProductResponse representa a resposta com dados de um produto
type ProductResponse struct {
	Barcode     string    `json:"codigoBarras"`
	Name        string    `json:"nombreProducto"`
	Description string    `json:"descripcion"`
	Quantity    int       `json:"cantidad"`
	Price       string    `json:"precio"`
	Status      string    `json:"estado"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductEnvelope embrulha um produto com uma mensagem
type ProductEnvelope struct {
	Message string          `json:"msg,omitempty"`
	Product ProductResponse `json:"producto"`
}

// RestockResponse é a resposta de /product/aumentar
type RestockResponse struct {
	Message string          `json:"msg"`
	Product ProductResponse `json:"productoActualizado"`
}

// ProductListResponse representa a lista de produtos
type ProductListResponse struct {
	Products []ProductResponse `json:"productos"`
}

// MovementResponse representa uma movimentação de estoque
type MovementResponse struct {
	ID               int64     `json:"id"`
	Barcode          string    `json:"codigoBarras"`
	Kind             string    `json:"tipo"`
	Delta            int       `json:"variacion"`
	PreviousQuantity int       `json:"cantidadAnterior"`
	NewQuantity      int       `json:"cantidadNueva"`
	SaleID           *int64    `json:"ventaId,omitempty"`
	CreatedAt        time.Time `json:"fecha"`
}

// MovementListResponse representa o histórico de estoque de um produto
type MovementListResponse struct {
	Movements []MovementResponse `json:"movimientos"`
}

// ToProductResponse converte um produto do domínio para DTO de resposta
func ToProductResponse(p *product.Product) ProductResponse {
	return ProductResponse{
		Barcode:     p.Barcode,
		Name:        p.Name,
		Description: p.Description,
		Quantity:    p.Quantity,
		Price:       p.Price.StringFixed(2),
		Status:      string(p.Status()),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductListResponse converte uma lista de produtos
func ToProductListResponse(products []*product.Product) ProductListResponse {
	data := make([]ProductResponse, len(products))
	for i, p := range products {
		data[i] = ToProductResponse(p)
	}
	return ProductListResponse{Products: data}
}

// ToMovementListResponse converte o histórico de estoque
func ToMovementListResponse(moves []*product.Movement) MovementListResponse {
	data := make([]MovementResponse, len(moves))
	for i, m := range moves {
		data[i] = MovementResponse{
			ID:               m.ID,
			Barcode:          m.Barcode,
			Kind:             string(m.Kind),
			Delta:            m.Delta,
			PreviousQuantity: m.PreviousQuantity,
			NewQuantity:      m.NewQuantity,
			SaleID:           m.SaleID,
			CreatedAt:        m.CreatedAt,
		}
	}
	return MovementListResponse{Movements: data}
}
