package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pos-inventario/internal/adapter/api/dto"
	"github.com/hugohenrick/pos-inventario/pkg/apperror"
	"github.com/hugohenrick/pos-inventario/pkg/logger"
)

const msgInternal = "Error interno del servidor"

// respondError traduz um erro de caso de uso para a resposta HTTP.
// Detalhes de persistência só vão para o log.
func respondError(ctx *gin.Context, log logger.Logger, err error) {
	status := apperror.HTTPStatus(err)

	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		log.Error("erro não tratado", "rota", ctx.FullPath(), "erro", err)
		ctx.JSON(status, dto.NewErrorResponse(status, msgInternal, nil))
		return
	}

	switch appErr.Kind {
	case apperror.KindPersistence, apperror.KindInternal:
		log.Error(appErr.Message, "rota", ctx.FullPath(), "erro", err)
		ctx.JSON(status, dto.NewErrorResponse(status, appErr.Message, nil))
		return
	}

	var details interface{}
	switch d := appErr.Details.(type) {
	case nil:
	case []string:
		if len(d) > 0 {
			details = d
		}
	default:
		details = d
	}
	ctx.JSON(status, dto.NewErrorResponse(status, appErr.Message, details))
}

// badRequest responde 400 para corpo ou parâmetro malformado
func badRequest(ctx *gin.Context, message string, err error) {
	var details interface{}
	if err != nil {
		details = bindingDetails(err)
	}
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, message, details))
}

// parseID lê um ID numérico positivo da rota
func parseID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(ctx, "ID inválido", err)
		return 0, false
	}
	return id, true
}
