package usecase_test

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/hugohenrick/pos-inventario/internal/adapter/repository/memory"
	"github.com/hugohenrick/pos-inventario/internal/domain/product"
	"github.com/hugohenrick/pos-inventario/internal/usecase"
	"github.com/hugohenrick/pos-inventario/pkg/apperror"
	"github.com/hugohenrick/pos-inventario/pkg/logger"
	"github.com/hugohenrick/pos-inventario/pkg/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store   *memory.Store
	stock   *usecase.StockControl
	catalog *usecase.CatalogService
}

func newFixture() *fixture {
	store := memory.NewStore()
	stock := usecase.NewStockControl(nil)
	gen := product.NewBarcodeGenerator(rand.New(rand.NewPCG(3, 5)), 0)
	return &fixture{
		store:   store,
		stock:   stock,
		catalog: usecase.NewCatalogService(store, stock, gen, logger.Nop()),
	}
}

func (f *fixture) addProduct(t *testing.T, name string, qty int, price string) *product.Product {
	t.Helper()
	p, err := f.catalog.Add(context.Background(), product.Draft{
		Name:        name,
		Description: name + " desc",
		Quantity:    qty,
		Price:       decimal.RequireFromString(price),
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) quantity(t *testing.T, barcode string) int {
	t.Helper()
	p, err := f.store.Products().FindByBarcode(context.Background(), barcode)
	require.NoError(t, err)
	return p.Quantity
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []usecase.Event
}

func (r *recordingPublisher) Publish(_ context.Context, ev usecase.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recordingPublisher) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

// conflictingStore falha com conflito de serialização nas primeiras n transações
type conflictingStore struct {
	repository.Store
	mu        sync.Mutex
	remaining int
	calls     int
}

func (c *conflictingStore) Within(ctx context.Context, fn repository.TxFunc) error {
	c.mu.Lock()
	c.calls++
	fail := c.remaining > 0
	if fail {
		c.remaining--
	}
	c.mu.Unlock()

	if fail {
		return apperror.ErrTxConflict
	}
	return c.Store.Within(ctx, fn)
}
