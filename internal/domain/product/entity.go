package product

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status representa a disponibilidade de um produto
type Status string

// Constantes para Status
const (
	StatusAvailable Status = "Disponible"
	StatusExhausted Status = "Agotado"
)

// MaxQuantity é o maior estoque representável, o limite da coluna INTEGER
const MaxQuantity = math.MaxInt32

// Erros de domínio do catálogo
var (
	ErrNotFound          = errors.New("producto no encontrado")
	ErrDuplicateName     = errors.New("ya existe un producto con ese nombre")
	ErrDuplicateBarcode  = errors.New("código de barras duplicado")
	ErrNameRequired      = errors.New("nombreProducto es obligatorio")
	ErrDescriptionNeeded = errors.New("descripcion es obligatoria")
	ErrNegativeQuantity  = errors.New("cantidad debe ser un entero mayor o igual a 0")
	ErrNegativePrice     = errors.New("precio debe ser un número mayor o igual a 0")
	ErrZeroDelta         = errors.New("el ajuste de stock no puede ser cero")
	ErrQuantityTooLarge  = errors.New("cantidad no puede superar 2147483647")
)

// Product representa um item do catálogo identificado pelo código de barras.
// O status nunca é armazenado: Status() deriva de Quantity.
type Product struct {
	Barcode     string
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Draft contém os dados de um produto ainda sem código de barras
type Draft struct {
	Name        string
	Description string
	Quantity    int
	Price       decimal.Decimal
}

// Patch descreve uma atualização parcial; campos nil não mudam
type Patch struct {
	Name        *string
	Description *string
	Quantity    *int
	Price       *decimal.Decimal
}

// Validate verifica os campos obrigatórios do rascunho
func (d Draft) Validate() error {
	var errs []error
	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, ErrNameRequired)
	}
	if strings.TrimSpace(d.Description) == "" {
		errs = append(errs, ErrDescriptionNeeded)
	}
	if d.Quantity < 0 {
		errs = append(errs, ErrNegativeQuantity)
	}
	if d.Quantity > MaxQuantity {
		errs = append(errs, ErrQuantityTooLarge)
	}
	if d.Price.IsNegative() {
		errs = append(errs, ErrNegativePrice)
	}
	return errors.Join(errs...)
}

// Validate verifica os campos presentes no patch
func (p Patch) Validate() error {
	var errs []error
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		errs = append(errs, ErrNameRequired)
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		errs = append(errs, ErrDescriptionNeeded)
	}
	if p.Quantity != nil && *p.Quantity < 0 {
		errs = append(errs, ErrNegativeQuantity)
	}
	if p.Quantity != nil && *p.Quantity > MaxQuantity {
		errs = append(errs, ErrQuantityTooLarge)
	}
	if p.Price != nil && p.Price.IsNegative() {
		errs = append(errs, ErrNegativePrice)
	}
	return errors.Join(errs...)
}

// New cria um produto a partir de um rascunho validado
func New(barcode string, d Draft, now time.Time) *Product {
	return &Product{
		Barcode:     barcode,
		Name:        strings.TrimSpace(d.Name),
		Description: strings.TrimSpace(d.Description),
		Price:       d.Price.Round(2),
		Quantity:    d.Quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Status deriva a disponibilidade da quantidade em estoque
func (p *Product) Status() Status {
	if p.Quantity > 0 {
		return StatusAvailable
	}
	return StatusExhausted
}

// IsAvailable indica se o produto pode ser vendido
func (p *Product) IsAvailable() bool {
	return p.Status() == StatusAvailable
}

// NormalizedName devolve a chave usada na unicidade de nomes
func (p *Product) NormalizedName() string {
	return NormalizeName(p.Name)
}

// ApplyDelta ajusta a quantidade; deltas negativos nunca levam abaixo de zero
// e o resultado nunca passa de MaxQuantity. Devolve a quantidade anterior.
func (p *Product) ApplyDelta(delta int) (int, error) {
	if delta == 0 {
		return p.Quantity, ErrZeroDelta
	}
	previous := p.Quantity
	if delta > 0 && delta > MaxQuantity-previous {
		return previous, ErrQuantityTooLarge
	}
	next := 0
	if delta > -previous {
		next = previous + delta
	}
	p.Quantity = next
	return previous, nil
}

// ApplyPatch aplica os campos não nulos, exceto a quantidade, que passa pelo controle de estoque
func (p *Product) ApplyPatch(patch Patch) {
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		p.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Price != nil {
		p.Price = patch.Price.Round(2)
	}
}

// Clone devolve uma cópia independente do produto
func (p *Product) Clone() *Product {
	c := *p
	return &c
}
