package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pos-inventario/internal/adapter/api/dto"
	"github.com/hugohenrick/pos-inventario/internal/usecase"
	"github.com/hugohenrick/pos-inventario/pkg/apperror"
	"github.com/hugohenrick/pos-inventario/pkg/logger"
)

const msgInvalidProduct = "Datos del producto incompletos o inválidos"

// ProductController gerencia as requisições relacionadas a produtos
type ProductController struct {
	catalog *usecase.CatalogService
	log     logger.Logger
}

// NewProductController cria uma nova instância de ProductController
func NewProductController(catalog *usecase.CatalogService, log logger.Logger) *ProductController {
	return &ProductController{catalog: catalog, log: log}
}

// Add cadastra um novo produto
// @Summary Agrega un producto
// @Description Registra un producto con código de barras generado; el estado se deriva de la cantidad
// @Tags product
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param producto body dto.AddProductRequest true "Datos del producto"
// @Success 200 {object} dto.ProductEnvelope
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /product/agregar [post]
func (c *ProductController) Add(ctx *gin.Context) {
	var request dto.AddProductRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, msgInvalidProduct, err)
		return
	}

	draft, err := request.ToDraft()
	if err != nil {
		respondError(ctx, c.log, apperror.Validation(msgInvalidProduct, err))
		return
	}

	p, err := c.catalog.Add(ctx.Request.Context(), draft)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ProductEnvelope{
		Message: "Producto agregado correctamente",
		Product: dto.ToProductResponse(p),
	})
}

// List lista o catálogo
// @Summary Lista los productos
// @Tags product
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProductListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /product/listar [get]
func (c *ProductController) List(ctx *gin.Context) {
	products, err := c.catalog.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToProductListResponse(products))
}

// Get busca um produto pelo código de barras
// @Summary Busca un producto por código de barras
// @Tags product
// @Produce json
// @Security BearerAuth
// @Param codigoBarras path string true "Código de barras"
// @Success 200 {object} dto.ProductEnvelope
// @Failure 404 {object} dto.ErrorResponse
// @Router /product/buscar/{codigoBarras} [get]
func (c *ProductController) Get(ctx *gin.Context) {
	p, err := c.catalog.Get(ctx.Request.Context(), ctx.Param("codigoBarras"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ProductEnvelope{Product: dto.ToProductResponse(p)})
}

// Update atualiza parcialmente um produto
// @Summary Actualiza un producto
// @Description Actualización parcial; el campo estado se ignora
// @Tags product
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param codigoBarras path string true "Código de barras"
// @Param producto body dto.UpdateProductRequest true "Campos a actualizar"
// @Success 200 {object} dto.ProductEnvelope
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /product/actualizar/{codigoBarras} [put]
func (c *ProductController) Update(ctx *gin.Context) {
	var request dto.UpdateProductRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, msgInvalidProduct, err)
		return
	}

	p, err := c.catalog.Update(ctx.Request.Context(), ctx.Param("codigoBarras"), request.ToPatch())
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ProductEnvelope{
		Message: "Producto actualizado correctamente",
		Product: dto.ToProductResponse(p),
	})
}

// Restock aumenta o estoque de um produto
// @Summary Aumenta el stock de un producto
// @Tags product
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param stock body dto.RestockRequest true "Código de barras y cantidad"
// @Success 200 {object} dto.RestockResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /product/aumentar [post]
func (c *ProductController) Restock(ctx *gin.Context) {
	var request dto.RestockRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, "Datos incompletos o inválidos", err)
		return
	}

	p, err := c.catalog.Restock(ctx.Request.Context(), request.Barcode, request.Quantity)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RestockResponse{
		Message: "Stock actualizado correctamente",
		Product: dto.ToProductResponse(p),
	})
}

// Remove apaga um produto
// @Summary Elimina un producto
// @Tags product
// @Produce json
// @Security BearerAuth
// @Param codigoBarras path string true "Código de barras"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /product/eliminar/{codigoBarras} [delete]
func (c *ProductController) Remove(ctx *gin.Context) {
	if err := c.catalog.Remove(ctx.Request.Context(), ctx.Param("codigoBarras")); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Producto eliminado correctamente"))
}

// Movements lista o histórico de estoque de um produto
// @Summary Historial de stock de un producto
// @Tags product
// @Produce json
// @Security BearerAuth
// @Param codigoBarras path string true "Código de barras"
// @Success 200 {object} dto.MovementListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /product/movimientos/{codigoBarras} [get]
func (c *ProductController) Movements(ctx *gin.Context) {
	moves, err := c.catalog.Movements(ctx.Request.Context(), ctx.Param("codigoBarras"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToMovementListResponse(moves))
}
