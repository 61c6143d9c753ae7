package usecase

import (
	"errors"

	"github.com/hugohenrick/pos-inventario/internal/domain/product"
	"github.com/hugohenrick/pos-inventario/internal/domain/sale"
	"github.com/hugohenrick/pos-inventario/internal/domain/user"
	"github.com/hugohenrick/pos-inventario/pkg/apperror"
)

const msgPersistence = "Error al acceder a la base de datos"

// persistence encapsula erros de armazenamento que ainda não são *apperror.Error
func persistence(err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Persistence(msgPersistence, err)
}

func productErr(err error) error {
	switch {
	case errors.Is(err, product.ErrNotFound):
		return apperror.NotFound("Producto no encontrado", err)
	case errors.Is(err, product.ErrDuplicateName):
		return apperror.Conflict("Ya existe un producto con ese nombre", err)
	case errors.Is(err, product.ErrDuplicateBarcode):
		return apperror.Conflict("El código de barras ya está en uso", err)
	}
	return persistence(err)
}

func saleErr(err error) error {
	if errors.Is(err, sale.ErrNotFound) {
		return apperror.NotFound("Venta no encontrada", err)
	}
	return persistence(err)
}

func userErr(err error) error {
	switch {
	case errors.Is(err, user.ErrNotFound):
		return apperror.NotFound("Usuario no encontrado", err)
	case errors.Is(err, user.ErrDuplicateEmail):
		return apperror.Conflict("El email ya está registrado", err)
	}
	return persistence(err)
}
