package sale

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"math"
	"sort"
	"strings"
)

// ItemRequest é uma linha pedida pelo caixa
type ItemRequest struct {
	Barcode  string
	Quantity int
}

// Request contém os dados de uma venda antes da verificação de estoque
type Request struct {
	Items              []ItemRequest
	PaymentMethod      PaymentMethod
	Transfer           *TransferDocument
	CustomerName       string
	CustomerNationalID string
	Note               string
}

// paymentRule valida os dados do documento para uma forma de pagamento
type paymentRule func(doc *TransferDocument) error

var paymentRules = map[PaymentMethod]paymentRule{
	PaymentCash: func(*TransferDocument) error {
		// dados de documento enviados com pagamento em dinheiro são descartados
		return nil
	},
	PaymentTransfer: func(doc *TransferDocument) error {
		if doc == nil || strings.TrimSpace(doc.Number) == "" || strings.TrimSpace(doc.Description) == "" {
			return ErrTransferDocumentRequired
		}
		return nil
	},
}

// ValidPaymentMethod indica se a forma de pagamento é suportada
func ValidPaymentMethod(m PaymentMethod) bool {
	_, ok := paymentRules[m]
	return ok
}

// Validate verifica todas as pré-condições que não dependem do estoque
func (r Request) Validate() error {
	var errs []error

	if len(r.Items) == 0 {
		errs = append(errs, ErrNoItems)
	}
	for _, it := range r.Items {
		if strings.TrimSpace(it.Barcode) == "" {
			errs = append(errs, ErrItemBarcodeRequired)
			break
		}
	}
	quantitiesOK := true
	for _, it := range r.Items {
		if it.Quantity <= 0 {
			errs = append(errs, ErrItemQuantity)
			quantitiesOK = false
			break
		}
		if it.Quantity > MaxItemQuantity {
			errs = append(errs, ErrItemQuantityLimit)
			quantitiesOK = false
			break
		}
	}
	if quantitiesOK {
		for _, it := range r.MergedItems() {
			if it.Quantity > MaxItemQuantity {
				errs = append(errs, ErrItemQuantityLimit)
				break
			}
		}
	}

	if rule, ok := paymentRules[r.PaymentMethod]; !ok {
		errs = append(errs, ErrInvalidPaymentMethod)
	} else if err := rule(r.Transfer); err != nil {
		errs = append(errs, err)
	}

	if strings.TrimSpace(r.CustomerName) == "" {
		errs = append(errs, ErrCustomerNameRequired)
	}
	nationalID := strings.TrimSpace(r.CustomerNationalID)
	switch {
	case nationalID == "":
		errs = append(errs, ErrCustomerIDRequired)
	case !nationalIDPattern.MatchString(nationalID):
		errs = append(errs, ErrCustomerIDFormat)
	}
	if strings.TrimSpace(r.Note) == "" {
		errs = append(errs, ErrNoteRequired)
	}

	return errors.Join(errs...)
}

// MergedItems soma quantidades de códigos repetidos mantendo a ordem da primeira ocorrência
func (r Request) MergedItems() []ItemRequest {
	index := make(map[string]int, len(r.Items))
	out := make([]ItemRequest, 0, len(r.Items))
	for _, it := range r.Items {
		code := strings.TrimSpace(it.Barcode)
		if i, ok := index[code]; ok {
			out[i].Quantity = addSaturating(out[i].Quantity, it.Quantity)
			continue
		}
		index[code] = len(out)
		out = append(out, ItemRequest{Barcode: code, Quantity: it.Quantity})
	}
	return out
}

// addSaturating soma quantidades positivas sem dar a volta em math.MaxInt
func addSaturating(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// Fingerprint resume o conteúdo normalizado do pedido. Pedidos equivalentes
// (linhas em outra ordem ou repetidas, espaços, documento num pagamento em
// dinheiro) têm a mesma impressão.
func (r Request) Fingerprint() string {
	items := r.MergedItems()
	sort.Slice(items, func(i, j int) bool { return items[i].Barcode < items[j].Barcode })

	canonical := struct {
		Items         []ItemRequest
		PaymentMethod PaymentMethod
		Transfer      *TransferDocument
		CustomerName  string
		NationalID    string
		Note          string
	}{
		Items:         items,
		PaymentMethod: r.PaymentMethod,
		CustomerName:  strings.TrimSpace(r.CustomerName),
		NationalID:    strings.TrimSpace(r.CustomerNationalID),
		Note:          strings.TrimSpace(r.Note),
	}
	if r.PaymentMethod == PaymentTransfer && r.Transfer != nil {
		canonical.Transfer = &TransferDocument{
			Number:      strings.TrimSpace(r.Transfer.Number),
			Description: strings.TrimSpace(r.Transfer.Description),
		}
	}

	// só tipos simples; Marshal não falha
	b, _ := json.Marshal(canonical)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// LockOrder devolve os códigos ordenados, a ordem em que as linhas são bloqueadas
func LockOrder(items []ItemRequest) []string {
	codes := make([]string, 0, len(items))
	for _, it := range items {
		codes = append(codes, it.Barcode)
	}
	sort.Strings(codes)
	return codes
}
