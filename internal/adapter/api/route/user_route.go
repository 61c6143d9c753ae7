package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pos-inventario/internal/adapter/api/controller"
)

// SetupUserRoutes configura as rotas de usuários. Login e registro são públicos.
func SetupUserRoutes(router *gin.RouterGroup, userController *controller.UserController, guards ...gin.HandlerFunc) {
	userRouter := router.Group("/users")
	{
		userRouter.POST("/login", userController.Login)
		userRouter.POST("/registro", userController.Register)

		protected := userRouter.Group("", guards...)
		protected.DELETE("/eliminar/:id", userController.Delete)
	}
}
