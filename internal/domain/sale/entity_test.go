package sale

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() Request {
	return Request{
		Items:              []ItemRequest{{Barcode: "4006381333931", Quantity: 2}},
		PaymentMethod:      PaymentCash,
		CustomerName:       "Ana Pérez",
		CustomerNationalID: "0102030405",
		Note:               "mostrador",
	}
}

func TestRequestValidateAcceptsCash(t *testing.T) {
	assert.NoError(t, validRequest().Validate())
}

func TestRequestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
		want   error
	}{
		{"no items", func(r *Request) { r.Items = nil }, ErrNoItems},
		{"zero quantity", func(r *Request) { r.Items[0].Quantity = 0 }, ErrItemQuantity},
		{"negative quantity", func(r *Request) { r.Items[0].Quantity = -1 }, ErrItemQuantity},
		{"blank barcode", func(r *Request) { r.Items[0].Barcode = " " }, ErrItemBarcodeRequired},
		{"unknown payment", func(r *Request) { r.PaymentMethod = "tarjeta" }, ErrInvalidPaymentMethod},
		{"transfer without doc", func(r *Request) { r.PaymentMethod = PaymentTransfer }, ErrTransferDocumentRequired},
		{"transfer half doc", func(r *Request) {
			r.PaymentMethod = PaymentTransfer
			r.Transfer = &TransferDocument{Number: "123", Description: "  "}
		}, ErrTransferDocumentRequired},
		{"blank name", func(r *Request) { r.CustomerName = "   " }, ErrCustomerNameRequired},
		{"blank national id", func(r *Request) { r.CustomerNationalID = "" }, ErrCustomerIDRequired},
		{"short national id", func(r *Request) { r.CustomerNationalID = "12345" }, ErrCustomerIDFormat},
		{"non numeric national id", func(r *Request) { r.CustomerNationalID = "01020304ab" }, ErrCustomerIDFormat},
		{"blank note", func(r *Request) { r.Note = "\t" }, ErrNoteRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			r.Items = append([]ItemRequest(nil), r.Items...)
			tt.mutate(&r)
			assert.ErrorIs(t, r.Validate(), tt.want)
		})
	}
}

func TestRequestValidateReportsEveryProblem(t *testing.T) {
	err := Request{PaymentMethod: "cheque"}.Validate()

	for _, want := range []error{ErrNoItems, ErrInvalidPaymentMethod, ErrCustomerNameRequired, ErrCustomerIDRequired, ErrNoteRequired} {
		assert.ErrorIs(t, err, want)
	}
}

func TestNewKeepsTransferOnlyForTransfers(t *testing.T) {
	now := time.Now()
	items := []LineItem{NewLineItem("4006381333931", 2, decimal.RequireFromString("3.50"))}

	cash := validRequest()
	cash.Transfer = &TransferDocument{Number: "1", Description: "x"}
	s := New(cash, items, now)
	assert.Nil(t, s.Transfer)

	transfer := validRequest()
	transfer.PaymentMethod = PaymentTransfer
	transfer.Transfer = &TransferDocument{Number: " 998 ", Description: " Banco Pichincha "}
	require.NoError(t, transfer.Validate())
	s = New(transfer, items, now)
	require.NotNil(t, s.Transfer)
	assert.Equal(t, "998", s.Transfer.Number)
	assert.Equal(t, "Banco Pichincha", s.Transfer.Description)
}

func TestTotals(t *testing.T) {
	items := []LineItem{
		NewLineItem("a", 2, decimal.RequireFromString("3.50")),
		NewLineItem("b", 3, decimal.RequireFromString("0.10")),
	}
	s := New(validRequest(), items, time.Now())

	assert.True(t, items[0].Subtotal.Equal(decimal.RequireFromString("7.00")))
	assert.True(t, s.Total.Equal(decimal.RequireFromString("7.30")))
	assert.NoError(t, s.CheckTotals())

	s.Total = decimal.NewFromInt(1)
	assert.Error(t, s.CheckTotals())
}

func TestMergedItemsAndLockOrder(t *testing.T) {
	r := Request{Items: []ItemRequest{
		{Barcode: "9", Quantity: 1},
		{Barcode: "1", Quantity: 2},
		{Barcode: " 9 ", Quantity: 3},
	}}

	merged := r.MergedItems()
	assert.Equal(t, []ItemRequest{{Barcode: "9", Quantity: 4}, {Barcode: "1", Quantity: 2}}, merged)
	assert.Equal(t, []string{"1", "9"}, LockOrder(merged))
}

func TestCorrectionValidate(t *testing.T) {
	note := "nueva"
	blankStr := " "
	num := "55"

	assert.NoError(t, Correction{Note: &note}.Validate(PaymentCash))
	assert.ErrorIs(t, Correction{Note: &blankStr}.Validate(PaymentCash), ErrNoteRequired)
	assert.ErrorIs(t, Correction{DocumentNumber: &num}.Validate(PaymentCash), ErrTransferNotAllowed)
	assert.NoError(t, Correction{DocumentNumber: &num}.Validate(PaymentTransfer))
	assert.ErrorIs(t, Correction{DocumentDescription: &blankStr}.Validate(PaymentTransfer), ErrTransferDocumentRequired)
}

func TestApplyCorrection(t *testing.T) {
	s := &Sale{PaymentMethod: PaymentTransfer, Note: "a", Transfer: &TransferDocument{Number: "1", Description: "d"}}
	note, num := " b ", "2"

	s.ApplyCorrection(Correction{Note: &note, DocumentNumber: &num})

	assert.Equal(t, "b", s.Note)
	assert.Equal(t, "2", s.Transfer.Number)
	assert.Equal(t, "d", s.Transfer.Description)
}

func TestAvailabilityError(t *testing.T) {
	e := &AvailabilityError{}
	assert.True(t, e.Empty())

	e.Shortages = append(e.Shortages, Shortage{Barcode: "x", Available: 1, Requested: 5})
	var err error = e
	assert.True(t, errors.Is(err, ErrInsufficientStock))
	assert.False(t, errors.Is(err, ErrProductUnavailable))
	assert.Contains(t, err.Error(), "disponible 1")

	e.Unavailable = []string{"y"}
	assert.True(t, errors.Is(err, ErrProductUnavailable))
	assert.Equal(t, []string{"y"}, e.Details()["codigosAgotados"])
}

func TestRequestValidateBoundsQuantities(t *testing.T) {
	r := validRequest()
	r.Items = []ItemRequest{{Barcode: "4006381333931", Quantity: math.MaxInt}}
	err := r.Validate()
	assert.ErrorIs(t, err, ErrItemQuantityLimit)
	assert.ErrorIs(t, err, ErrItemQuantity)

	// cada linha cabe, a soma não
	r.Items = []ItemRequest{
		{Barcode: "4006381333931", Quantity: MaxItemQuantity},
		{Barcode: " 4006381333931 ", Quantity: 2},
	}
	assert.ErrorIs(t, r.Validate(), ErrItemQuantityLimit)

	r.Items = []ItemRequest{
		{Barcode: "4006381333931", Quantity: MaxItemQuantity - 2},
		{Barcode: "4006381333931", Quantity: 2},
	}
	assert.NoError(t, r.Validate())
}

func TestMergedItemsSaturates(t *testing.T) {
	r := Request{Items: []ItemRequest{
		{Barcode: "4006381333931", Quantity: math.MaxInt},
		{Barcode: "4006381333931", Quantity: 2},
	}}

	merged := r.MergedItems()
	require.Len(t, merged, 1)
	assert.Equal(t, math.MaxInt, merged[0].Quantity)
}

func TestFingerprint(t *testing.T) {
	a := validRequest()
	a.Items = []ItemRequest{{Barcode: "4006381333931", Quantity: 1}, {Barcode: "5901234123457", Quantity: 3}}

	b := validRequest()
	b.Items = []ItemRequest{{Barcode: "5901234123457", Quantity: 1}, {Barcode: "4006381333931", Quantity: 1}, {Barcode: "5901234123457", Quantity: 2}}
	b.Note = "  mostrador "
	b.Transfer = &TransferDocument{Number: "ignorado", Description: "efectivo"}

	assert.Len(t, a.Fingerprint(), 64)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	c := validRequest()
	c.Items = []ItemRequest{{Barcode: "4006381333931", Quantity: 2}, {Barcode: "5901234123457", Quantity: 3}}
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())

	d := a
	d.PaymentMethod = PaymentTransfer
	d.Transfer = &TransferDocument{Number: "TR-1", Description: "Banco"}
	assert.NotEqual(t, a.Fingerprint(), d.Fingerprint())
}
