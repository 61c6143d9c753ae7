package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pos-inventario/internal/adapter/api/controller"
)

// SetupProductRoutes configura as rotas do catálogo de produtos
func SetupProductRoutes(router *gin.RouterGroup, productController *controller.ProductController, guards ...gin.HandlerFunc) {
	productRouter := router.Group("/product", guards...)
	{
		productRouter.POST("/agregar", productController.Add)
		productRouter.GET("/listar", productController.List)
		productRouter.GET("/buscar/:codigoBarras", productController.Get)
		productRouter.PUT("/actualizar/:codigoBarras", productController.Update)
		productRouter.POST("/aumentar", productController.Restock)
		productRouter.DELETE("/eliminar/:codigoBarras", productController.Remove)
		productRouter.GET("/movimientos/:codigoBarras", productController.Movements)
	}
}
