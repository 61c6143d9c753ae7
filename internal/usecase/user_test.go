package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/hugohenrick/pos-inventario/internal/adapter/repository/memory"
	"github.com/hugohenrick/pos-inventario/internal/domain/user"
	"github.com/hugohenrick/pos-inventario/internal/usecase"
	"github.com/hugohenrick/pos-inventario/pkg/apperror"
	"github.com/hugohenrick/pos-inventario/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registration() user.Registration {
	return user.Registration{
		Name:       "Carlos Andrade",
		NationalID: "0912345678",
		Phone:      "0987654321",
		Email:      "carlos@tienda.ec",
		Password:   "clave-segura",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := usecase.NewUserService(memory.NewStore().Users(), logger.Nop())

	u, err := svc.Register(ctx, registration())
	require.NoError(t, err)
	assert.NotEqual(t, "clave-segura", u.Password)

	logged, err := svc.Login(ctx, " CARLOS@tienda.ec ", "clave-segura")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)
	assert.Equal(t, "0987654321", logged.Phone)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := usecase.NewUserService(memory.NewStore().Users(), logger.Nop())
	_, err := svc.Register(ctx, registration())
	require.NoError(t, err)

	dup := registration()
	dup.Email = "Carlos@Tienda.ec"
	_, err = svc.Register(ctx, dup)

	assert.ErrorIs(t, err, user.ErrDuplicateEmail)
	assert.Equal(t, 400, apperror.HTTPStatus(err))
}

func TestRegisterRequiresAllFields(t *testing.T) {
	svc := usecase.NewUserService(memory.NewStore().Users(), logger.Nop())
	r := registration()
	r.Phone = ""

	_, err := svc.Register(context.Background(), r)
	assert.ErrorIs(t, err, user.ErrPhoneRequired)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestRegisterRejectsOverlongPassword(t *testing.T) {
	svc := usecase.NewUserService(memory.NewStore().Users(), logger.Nop())
	r := registration()
	r.Password = strings.Repeat("a", 80)

	_, err := svc.Register(context.Background(), r)
	assert.ErrorIs(t, err, user.ErrPasswordTooLong)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Equal(t, 400, apperror.HTTPStatus(err))
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	svc := usecase.NewUserService(memory.NewStore().Users(), logger.Nop())
	_, err := svc.Register(ctx, registration())
	require.NoError(t, err)

	_, err = svc.Login(ctx, "nadie@tienda.ec", "x")
	assert.Equal(t, 404, apperror.HTTPStatus(err))

	_, err = svc.Login(ctx, "carlos@tienda.ec", "equivocada")
	assert.ErrorIs(t, err, user.ErrInvalidCredential)
	assert.Equal(t, 400, apperror.HTTPStatus(err))

	_, err = svc.Login(ctx, "", "")
	assert.ErrorIs(t, err, usecase.ErrCredentialsMissing)
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	svc := usecase.NewUserService(memory.NewStore().Users(), logger.Nop())
	u, err := svc.Register(ctx, registration())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, u.ID))
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(svc.Delete(ctx, u.ID)))

	_, err = svc.Login(ctx, "carlos@tienda.ec", "clave-segura")
	assert.Equal(t, 404, apperror.HTTPStatus(err))
}
