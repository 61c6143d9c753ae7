package dto

import (
	"time"

	"github.com/hugohenrick/pos-inventario/internal/domain/sale"
)

// SaleItemRequest representa uma linha pedida na venda
type SaleItemRequest struct {
	Barcode  string `json:"codigoBarras" binding:"required" example:"7501234567897"`
	Quantity int    `json:"cantidad" binding:"required,gt=0,max=2147483647" example:"2"`
}

// RegisterSaleRequest representa os dados para registrar uma venda
type RegisterSaleRequest struct {
	Items               []SaleItemRequest `json:"productos" binding:"required,min=1,dive"`
	PaymentMethod       string            `json:"tipoPago" binding:"required,oneof=efectivo transferencia" example:"efectivo"`
	DocumentNumber      string            `json:"numeroDocumento,omitempty"`
	DocumentDescription string            `json:"descripcionDocumento,omitempty"`
	CustomerName        string            `json:"nombreCliente" binding:"required" example:"María López"`
	CustomerNationalID  string            `json:"cedulaCliente" binding:"required" example:"1712345678"`
	Note                string            `json:"observacion" binding:"required" example:"Venta de mostrador"`
}

// ToRequest converte para o pedido do domínio
func (r RegisterSaleRequest) ToRequest() sale.Request {
	items := make([]sale.ItemRequest, len(r.Items))
	for i, it := range r.Items {
		items[i] = sale.ItemRequest{Barcode: it.Barcode, Quantity: it.Quantity}
	}

	req := sale.Request{
		Items:              items,
		PaymentMethod:      sale.PaymentMethod(r.PaymentMethod),
		CustomerName:       r.CustomerName,
		CustomerNationalID: r.CustomerNationalID,
		Note:               r.Note,
	}
	if r.DocumentNumber != "" || r.DocumentDescription != "" {
		req.Transfer = &sale.TransferDocument{
			Number:      r.DocumentNumber,
			Description: r.DocumentDescription,
		}
	}
	return req
}

// UpdateSaleRequest representa a correção de observação ou documento
type UpdateSaleRequest struct {
	Note                *string `json:"observacion,omitempty"`
	DocumentNumber      *string `json:"numeroDocumento,omitempty"`
	DocumentDescription *string `json:"descripcionDocumento,omitempty"`
}

// ToCorrection converte para a correção do domínio
func (r UpdateSaleRequest) ToCorrection() sale.Correction {
	return sale.Correction{
		Note:                r.Note,
		DocumentNumber:      r.DocumentNumber,
		DocumentDescription: r.DocumentDescription,
	}
}

// SaleItemResponse representa uma linha da venda com preço congelado
type SaleItemResponse struct {
	Barcode  string `json:"codigoBarras"`
	Quantity int    `json:"cantidad"`
	Price    string `json:"precio"`
	Subtotal string `json:"subtotal"`
}

// SaleResponse representa a resposta com dados de uma venda
type SaleResponse struct {
	ID                  int64              `json:"id"`
	SoldAt              time.Time          `json:"fechaVenta"`
	Items               []SaleItemResponse `json:"productos"`
	Total               string             `json:"total"`
	PaymentMethod       string             `json:"tipoPago"`
	DocumentNumber      *string            `json:"numeroDocumento"`
	DocumentDescription *string            `json:"descripcionDocumento"`
	CustomerName        string             `json:"nombreCliente"`
	CustomerNationalID  string             `json:"cedulaCliente"`
	Note                string             `json:"observacion"`
}

// SaleEnvelope embrulha uma venda com uma mensagem
type SaleEnvelope struct {
	Message string       `json:"msg,omitempty"`
	Sale    SaleResponse `json:"venta"`
}

// SaleListResponse representa a lista de vendas
type SaleListResponse struct {
	Sales []SaleResponse `json:"ventas"`
}

// ToSaleResponse converte uma venda do domínio para DTO de resposta
func ToSaleResponse(s *sale.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i, it := range s.Items {
		items[i] = SaleItemResponse{
			Barcode:  it.Barcode,
			Quantity: it.Quantity,
			Price:    it.UnitPrice.StringFixed(2),
			Subtotal: it.Subtotal.StringFixed(2),
		}
	}

	resp := SaleResponse{
		ID:                 s.ID,
		SoldAt:             s.SoldAt,
		Items:              items,
		Total:              s.Total.StringFixed(2),
		PaymentMethod:      string(s.PaymentMethod),
		CustomerName:       s.CustomerName,
		CustomerNationalID: s.CustomerNationalID,
		Note:               s.Note,
	}
	if s.Transfer != nil {
		number, description := s.Transfer.Number, s.Transfer.Description
		resp.DocumentNumber = &number
		resp.DocumentDescription = &description
	}
	return resp
}

// ToSaleListResponse converte uma lista de vendas
func ToSaleListResponse(sales []*sale.Sale) SaleListResponse {
	data := make([]SaleResponse, len(sales))
	for i, s := range sales {
		data[i] = ToSaleResponse(s)
	}
	return SaleListResponse{Sales: data}
}
