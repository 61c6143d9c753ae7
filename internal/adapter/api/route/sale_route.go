package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pos-inventario/internal/adapter/api/controller"
)

// SetupSaleRoutes configura as rotas de vendas
func SetupSaleRoutes(router *gin.RouterGroup, saleController *controller.SaleController, guards ...gin.HandlerFunc) {
	saleRouter := router.Group("/vent", guards...)
	{
		saleRouter.POST("/registrarVenta", saleController.Register)
		saleRouter.GET("/listarVenta", saleController.List)
		saleRouter.GET("/listarVenta/:id", saleController.Get)
		saleRouter.PUT("/actualizarVenta/:id", saleController.Update)
		saleRouter.DELETE("/eliminarVenta/:id", saleController.Delete)
	}
}
