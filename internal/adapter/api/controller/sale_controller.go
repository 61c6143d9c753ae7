package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pos-inventario/internal/adapter/api/dto"
	"github.com/hugohenrick/pos-inventario/internal/usecase"
	"github.com/hugohenrick/pos-inventario/pkg/logger"
)

// IdempotencyHeader é o cabeçalho que torna o registro de venda seguro para reenvio
const IdempotencyHeader = "Idempotency-Key"

// SaleController gerencia as requisições relacionadas a vendas
type SaleController struct {
	sales *usecase.SaleService
	log   logger.Logger
}

// NewSaleController cria uma nova instância de SaleController
func NewSaleController(sales *usecase.SaleService, log logger.Logger) *SaleController {
	return &SaleController{sales: sales, log: log}
}

// Register registra uma venda
// @Summary Registra una venta
// @Description Valida disponibilidad y stock, guarda la venta y descuenta el stock en una sola transacción
// @Tags vent
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Clave para reintentos seguros"
// @Param venta body dto.RegisterSaleRequest true "Datos de la venta"
// @Success 201 {object} dto.SaleEnvelope
// @Success 200 {object} dto.SaleEnvelope "Venta ya registrada con la misma clave"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /vent/registrarVenta [post]
func (c *SaleController) Register(ctx *gin.Context) {
	var request dto.RegisterSaleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, "Datos incompletos o inválidos", err)
		return
	}

	s, replayed, err := c.sales.Register(ctx.Request.Context(), request.ToRequest(), ctx.GetHeader(IdempotencyHeader))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	status := http.StatusCreated
	if replayed {
		status = http.StatusOK
	}
	ctx.JSON(status, dto.SaleEnvelope{
		Message: "Venta registrada correctamente",
		Sale:    dto.ToSaleResponse(s),
	})
}

// List lista as vendas, mais recentes primeiro
// @Summary Lista las ventas
// @Tags vent
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SaleListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /vent/listarVenta [get]
func (c *SaleController) List(ctx *gin.Context) {
	sales, err := c.sales.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToSaleListResponse(sales))
}

// Get busca uma venda pelo ID
// @Summary Obtiene una venta por ID
// @Tags vent
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de la venta"
// @Success 200 {object} dto.SaleEnvelope
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /vent/listarVenta/{id} [get]
func (c *SaleController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	s, err := c.sales.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SaleEnvelope{Sale: dto.ToSaleResponse(s)})
}

// Update corrige observação ou documento de transferência
// @Summary Actualiza observación o datos de transferencia
// @Tags vent
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de la venta"
// @Param venta body dto.UpdateSaleRequest true "Campos a actualizar"
// @Success 200 {object} dto.SaleEnvelope
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /vent/actualizarVenta/{id} [put]
func (c *SaleController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var request dto.UpdateSaleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, "Datos incompletos o inválidos", err)
		return
	}

	s, err := c.sales.Update(ctx.Request.Context(), id, request.ToCorrection())
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SaleEnvelope{
		Message: "Venta actualizada correctamente",
		Sale:    dto.ToSaleResponse(s),
	})
}

// Delete remove uma venda; o estoque não é devolvido
// @Summary Elimina una venta
// @Tags vent
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID de la venta"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /vent/eliminarVenta/{id} [delete]
func (c *SaleController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.sales.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Venta eliminada correctamente"))
}
