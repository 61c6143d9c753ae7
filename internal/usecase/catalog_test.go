package usecase_test

import (
	"context"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/hugohenrick/pos-inventario/internal/domain/product"
	"github.com/hugohenrick/pos-inventario/internal/usecase"
	"github.com/hugohenrick/pos-inventario/pkg/apperror"
	"github.com/hugohenrick/pos-inventario/pkg/logger"
	"github.com/hugohenrick/pos-inventario/pkg/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddThenListRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.catalog.List(ctx)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	p := f.addProduct(t, "Chocolate", 12, "1.25")
	assert.True(t, product.ValidBarcode(p.Barcode))
	assert.Equal(t, product.StatusAvailable, p.Status())

	list, err := f.catalog.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p.Barcode, list[0].Barcode)
	assert.Equal(t, "Chocolate", list[0].Name)
	assert.Equal(t, "Chocolate desc", list[0].Description)
	assert.Equal(t, 12, list[0].Quantity)
	assert.True(t, list[0].Price.Equal(decimal.RequireFromString("1.25")))
}

func TestAddZeroQuantityIsExhausted(t *testing.T) {
	f := newFixture()
	p := f.addProduct(t, "Mermelada", 0, "2.00")
	assert.Equal(t, product.StatusExhausted, p.Status())
}

func TestAddRejectsAccentAndCaseDuplicates(t *testing.T) {
	f := newFixture()
	f.addProduct(t, "Café", 1, "3.00")

	_, err := f.catalog.Add(context.Background(), product.Draft{Name: "cafe", Description: "x", Quantity: 1, Price: decimal.NewFromInt(1)})

	assert.ErrorIs(t, err, product.ErrDuplicateName)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.Equal(t, 400, apperror.HTTPStatus(err))
}

func TestAddValidation(t *testing.T) {
	f := newFixture()
	_, err := f.catalog.Add(context.Background(), product.Draft{Name: "", Description: "x", Quantity: -1})

	assert.ErrorIs(t, err, product.ErrNameRequired)
	assert.ErrorIs(t, err, product.ErrNegativeQuantity)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestAddFailsWhenBarcodesExhausted(t *testing.T) {
	store := &takenBarcodes{Store: newFixture().store}
	gen := product.NewBarcodeGenerator(rand.New(rand.NewPCG(1, 1)), 3)
	catalog := usecase.NewCatalogService(store, usecase.NewStockControl(nil), gen, logger.Nop())

	_, err := catalog.Add(context.Background(), product.Draft{Name: "x", Description: "y", Price: decimal.NewFromInt(1)})

	assert.ErrorIs(t, err, product.ErrGenerationExhausted)
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
}

func TestUpdateIsPartialAndDerivesStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.addProduct(t, "Leche", 4, "0.95")

	zero := 0
	updated, err := f.catalog.Update(ctx, p.Barcode, product.Patch{Quantity: &zero})
	require.NoError(t, err)
	assert.Equal(t, product.StatusExhausted, updated.Status())
	assert.Equal(t, "Leche", updated.Name)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("0.95")))

	price := decimal.RequireFromString("1.05")
	desc := "entera 1L"
	updated, err = f.catalog.Update(ctx, p.Barcode, product.Patch{Price: &price, Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Quantity)
	assert.Equal(t, "entera 1L", updated.Description)

	moves, err := f.catalog.Movements(ctx, p.Barcode)
	require.NoError(t, err)
	require.Len(t, moves, 2)
	assert.Equal(t, product.MovementAdjustment, moves[0].Kind)
	assert.Equal(t, -4, moves[0].Delta)
}

func TestUpdateErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a := f.addProduct(t, "Azúcar", 1, "1.00")
	f.addProduct(t, "Sal", 1, "1.00")

	_, err := f.catalog.Update(ctx, a.Barcode, product.Patch{})
	assert.ErrorIs(t, err, usecase.ErrNothingToUpdate)

	name := "SAL"
	_, err = f.catalog.Update(ctx, a.Barcode, product.Patch{Name: &name})
	assert.ErrorIs(t, err, product.ErrDuplicateName)

	same := "azucar"
	renamed, err := f.catalog.Update(ctx, a.Barcode, product.Patch{Name: &same})
	require.NoError(t, err)
	assert.Equal(t, "azucar", renamed.Name)

	_, err = f.catalog.Update(ctx, "0000000000000", product.Patch{Name: &same})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestRestock(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.addProduct(t, "Arroz", 0, "1.10")

	restocked, err := f.catalog.Restock(ctx, p.Barcode, 6)
	require.NoError(t, err)
	assert.Equal(t, 6, restocked.Quantity)
	assert.Equal(t, product.StatusAvailable, restocked.Status())

	_, err = f.catalog.Restock(ctx, p.Barcode, 0)
	assert.ErrorIs(t, err, usecase.ErrRestockQuantity)

	_, err = f.catalog.Restock(ctx, "0000000000000", 2)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestRestockNeverOverflows(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.addProduct(t, "Azúcar", 6, "1.30")

	_, err := f.catalog.Restock(ctx, p.Barcode, math.MaxInt)
	assert.ErrorIs(t, err, usecase.ErrRestockQuantity)
	assert.Equal(t, 400, apperror.HTTPStatus(err))

	_, err = f.catalog.Restock(ctx, p.Barcode, product.MaxQuantity)
	assert.ErrorIs(t, err, product.ErrQuantityTooLarge)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	assert.Equal(t, 6, f.quantity(t, p.Barcode))
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.addProduct(t, "Vinagre", 2, "0.60")

	require.NoError(t, f.catalog.Remove(ctx, p.Barcode))
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(f.catalog.Remove(ctx, p.Barcode)))

	_, err := f.catalog.Movements(ctx, p.Barcode)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestStockControlMissingProductIsInvariantViolation(t *testing.T) {
	f := newFixture()
	err := f.store.Within(context.Background(), func(ctx context.Context, tx repository.Repositories) error {
		_, err := f.stock.Apply(ctx, tx, usecase.Adjustment{Barcode: "0000000000000", Delta: -1, Kind: product.MovementSale})
		return err
	})

	assert.ErrorIs(t, err, usecase.ErrStockTargetMissing)
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
}

func TestStockControlClampsAtZero(t *testing.T) {
	f := newFixture()
	p := f.addProduct(t, "Maní", 2, "0.30")

	err := f.store.Within(context.Background(), func(ctx context.Context, tx repository.Repositories) error {
		got, err := f.stock.Apply(ctx, tx, usecase.Adjustment{Barcode: p.Barcode, Delta: -5, Kind: product.MovementAdjustment})
		if err != nil {
			return err
		}
		assert.Equal(t, 0, got.Quantity)
		return nil
	})
	require.NoError(t, err)

	moves, err := f.catalog.Movements(context.Background(), p.Barcode)
	require.NoError(t, err)
	assert.Equal(t, -2, moves[0].Delta)
	assert.Equal(t, 0, moves[0].NewQuantity)
}

// takenBarcodes faz todo código parecer em uso
type takenBarcodes struct {
	repository.Store
}

func (s *takenBarcodes) Within(ctx context.Context, fn repository.TxFunc) error {
	return s.Store.Within(ctx, func(ctx context.Context, tx repository.Repositories) error {
		return fn(ctx, takenTx{tx})
	})
}

type takenTx struct {
	repository.Repositories
}

func (t takenTx) Products() product.Repository {
	return takenProducts{t.Repositories.Products()}
}

type takenProducts struct {
	product.Repository
}

func (takenProducts) ExistsByBarcode(context.Context, string) (bool, error) {
	return true, nil
}
