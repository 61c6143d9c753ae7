package sale

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod representa a forma de pagamento de uma venda
type PaymentMethod string

// Constantes para PaymentMethod
const (
	PaymentCash     PaymentMethod = "efectivo"
	PaymentTransfer PaymentMethod = "transferencia"
)

// Erros de domínio das vendas
var (
	ErrNotFound                 = errors.New("venta no encontrada")
	ErrNoItems                  = errors.New("la venta debe incluir al menos un producto")
	ErrItemBarcodeRequired      = errors.New("cada producto debe tener codigoBarras")
	ErrItemQuantity             = errors.New("la cantidad de cada producto debe ser mayor a 0")
	ErrInvalidPaymentMethod     = errors.New("tipoPago debe ser efectivo o transferencia")
	ErrTransferDocumentRequired = errors.New("numeroDocumento y descripcionDocumento son obligatorios para transferencias")
	ErrTransferNotAllowed       = errors.New("los datos del documento solo aplican a pagos por transferencia")
	ErrCustomerNameRequired     = errors.New("nombreCliente es obligatorio")
	ErrCustomerIDRequired       = errors.New("cedulaCliente es obligatoria")
	ErrCustomerIDFormat         = errors.New("cedulaCliente debe tener exactamente 10 dígitos")
	ErrNoteRequired             = errors.New("observacion es obligatoria")
	ErrProductUnavailable       = errors.New("productos no disponibles")
	ErrInsufficientStock        = errors.New("stock insuficiente")
)

// MaxItemQuantity limita a quantidade de um código numa venda, somadas as linhas repetidas
const MaxItemQuantity = math.MaxInt32

// ErrItemQuantityLimit é a quantidade acima de MaxItemQuantity; também satisfaz ErrItemQuantity
var ErrItemQuantityLimit = fmt.Errorf("%w y no superar %d", ErrItemQuantity, MaxItemQuantity)

var nationalIDPattern = regexp.MustCompile(`^\d{10}$`)

// TransferDocument identifica o comprovante de uma transferência
type TransferDocument struct {
	Number      string `json:"numeroDocumento"`
	Description string `json:"descripcionDocumento"`
}

// LineItem é uma linha da venda com o preço congelado no momento da venda
type LineItem struct {
	Barcode   string          `json:"codigoBarras"`
	Quantity  int             `json:"cantidad"`
	UnitPrice decimal.Decimal `json:"precio"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// NewLineItem calcula o subtotal a partir do preço unitário
func NewLineItem(barcode string, quantity int, unitPrice decimal.Decimal) LineItem {
	return LineItem{
		Barcode:   barcode,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Subtotal:  unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// Sale representa uma venda registrada
type Sale struct {
	ID                 int64
	SoldAt             time.Time
	Items              []LineItem
	Total              decimal.Decimal
	PaymentMethod      PaymentMethod
	Transfer           *TransferDocument
	CustomerName       string
	CustomerNationalID string
	Note               string
}

// New monta uma venda calculando o total; o pedido já deve estar validado
func New(req Request, items []LineItem, now time.Time) *Sale {
	s := &Sale{
		SoldAt:             now,
		Items:              items,
		PaymentMethod:      req.PaymentMethod,
		CustomerName:       strings.TrimSpace(req.CustomerName),
		CustomerNationalID: strings.TrimSpace(req.CustomerNationalID),
		Note:               strings.TrimSpace(req.Note),
	}
	if req.PaymentMethod == PaymentTransfer && req.Transfer != nil {
		s.Transfer = &TransferDocument{
			Number:      strings.TrimSpace(req.Transfer.Number),
			Description: strings.TrimSpace(req.Transfer.Description),
		}
	}
	s.Total = SumSubtotals(items)
	return s
}

// SumSubtotals soma os subtotais das linhas
func SumSubtotals(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal)
	}
	return total
}

// CheckTotals verifica subtotal = preço × quantidade e total = Σ subtotais
func (s *Sale) CheckTotals() error {
	for _, it := range s.Items {
		want := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		if !it.Subtotal.Equal(want) {
			return fmt.Errorf("subtotal inconsistente para %s: %s != %s", it.Barcode, it.Subtotal, want)
		}
	}
	if sum := SumSubtotals(s.Items); !s.Total.Equal(sum) {
		return fmt.Errorf("total inconsistente: %s != %s", s.Total, sum)
	}
	return nil
}

// Clone devolve uma cópia independente da venda
func (s *Sale) Clone() *Sale {
	c := *s
	c.Items = append([]LineItem(nil), s.Items...)
	if s.Transfer != nil {
		t := *s.Transfer
		c.Transfer = &t
	}
	return &c
}

// ApplyCorrection aplica uma correção já validada
func (s *Sale) ApplyCorrection(c Correction) {
	if c.Note != nil {
		s.Note = strings.TrimSpace(*c.Note)
	}
	if s.Transfer == nil {
		return
	}
	if c.DocumentNumber != nil {
		s.Transfer.Number = strings.TrimSpace(*c.DocumentNumber)
	}
	if c.DocumentDescription != nil {
		s.Transfer.Description = strings.TrimSpace(*c.DocumentDescription)
	}
}

// Correction descreve os campos editáveis de uma venda
type Correction struct {
	Note                *string
	DocumentNumber      *string
	DocumentDescription *string
}

// Validate verifica a correção contra a forma de pagamento da venda
func (c Correction) Validate(method PaymentMethod) error {
	var errs []error
	if c.Note != nil && strings.TrimSpace(*c.Note) == "" {
		errs = append(errs, ErrNoteRequired)
	}
	if c.DocumentNumber != nil || c.DocumentDescription != nil {
		if method != PaymentTransfer {
			errs = append(errs, ErrTransferNotAllowed)
		} else if blank(c.DocumentNumber) || blank(c.DocumentDescription) {
			errs = append(errs, ErrTransferDocumentRequired)
		}
	}
	return errors.Join(errs...)
}

// blank trata ponteiro presente com texto vazio como inválido
func blank(s *string) bool {
	return s != nil && strings.TrimSpace(*s) == ""
}
