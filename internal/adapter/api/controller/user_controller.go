package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pos-inventario/internal/adapter/api/dto"
	"github.com/hugohenrick/pos-inventario/internal/usecase"
	"github.com/hugohenrick/pos-inventario/pkg/apperror"
	"github.com/hugohenrick/pos-inventario/pkg/auth"
	"github.com/hugohenrick/pos-inventario/pkg/logger"
)

// UserController gerencia as requisições relacionadas a usuários
type UserController struct {
	users *usecase.UserService
	jwt   *auth.JWTService
	log   logger.Logger
}

// NewUserController cria uma nova instância de UserController
func NewUserController(users *usecase.UserService, jwt *auth.JWTService, log logger.Logger) *UserController {
	return &UserController{users: users, jwt: jwt, log: log}
}

// Login autentica um usuário e devolve um token JWT
// @Summary Inicia sesión
// @Tags users
// @Accept json
// @Produce json
// @Param credenciales body dto.LoginRequest true "Email y contraseña"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/login [post]
func (c *UserController) Login(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, "Datos incompletos", err)
		return
	}

	u, err := c.users.Login(ctx.Request.Context(), request.Email, request.Password)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	token, expiresAt, err := c.jwt.GenerateToken(u)
	if err != nil {
		respondError(ctx, c.log, apperror.Internal("Error al generar el token", err))
		return
	}

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		Name:      u.Name,
		ID:        u.ID,
		Email:     u.Email,
		Phone:     u.Phone,
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// Register cadastra um novo usuário
// @Summary Registra un usuario
// @Tags users
// @Accept json
// @Produce json
// @Param usuario body dto.RegisterUserRequest true "Datos del usuario"
// @Success 200 {object} dto.RegisterUserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/registro [post]
func (c *UserController) Register(ctx *gin.Context) {
	var request dto.RegisterUserRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, "Datos incompletos", err)
		return
	}

	u, err := c.users.Register(ctx.Request.Context(), request.ToRegistration())
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RegisterUserResponse{
		Message: "Usuario registrado exitosamente",
		User:    dto.ToUserResponse(u),
	})
}

// Delete remove um usuário
// @Summary Elimina un usuario
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del usuario"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/eliminar/{id} [delete]
func (c *UserController) Delete(ctx *gin.Context) {
	if err := c.users.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Usuario eliminado correctamente"))
}
