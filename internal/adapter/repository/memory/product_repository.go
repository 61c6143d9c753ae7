package memory

import (
	"context"
	"sort"

	"github.com/hugohenrick/pos-inventario/internal/domain/product"
)

type productRepository struct {
	access access
}

func (r *productRepository) Create(_ context.Context, p *product.Product) error {
	return r.access(func(st *state) error {
		if _, ok := st.products[p.Barcode]; ok {
			return product.ErrDuplicateBarcode
		}
		normalized := p.NormalizedName()
		for _, other := range st.products {
			if other.NormalizedName() == normalized {
				return product.ErrDuplicateName
			}
		}
		st.products[p.Barcode] = p.Clone()
		return nil
	})
}

func (r *productRepository) FindByBarcode(_ context.Context, barcode string) (*product.Product, error) {
	var found *product.Product
	err := r.access(func(st *state) error {
		p, ok := st.products[barcode]
		if !ok {
			return product.ErrNotFound
		}
		found = p.Clone()
		return nil
	})
	return found, err
}

// FindByBarcodeForUpdate não precisa bloquear: Within já serializa as transações
func (r *productRepository) FindByBarcodeForUpdate(ctx context.Context, barcode string) (*product.Product, error) {
	return r.FindByBarcode(ctx, barcode)
}

func (r *productRepository) ExistsByBarcode(_ context.Context, barcode string) (bool, error) {
	var exists bool
	err := r.access(func(st *state) error {
		_, exists = st.products[barcode]
		return nil
	})
	return exists, err
}

func (r *productRepository) ExistsByNormalizedName(_ context.Context, normalized, exceptBarcode string) (bool, error) {
	var exists bool
	err := r.access(func(st *state) error {
		for code, p := range st.products {
			if code != exceptBarcode && p.NormalizedName() == normalized {
				exists = true
				return nil
			}
		}
		return nil
	})
	return exists, err
}

func (r *productRepository) List(_ context.Context) ([]*product.Product, error) {
	var out []*product.Product
	err := r.access(func(st *state) error {
		out = make([]*product.Product, 0, len(st.products))
		for _, p := range st.products {
			out = append(out, p.Clone())
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Barcode < out[j].Barcode
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, err
}

func (r *productRepository) Update(_ context.Context, p *product.Product) error {
	return r.access(func(st *state) error {
		if _, ok := st.products[p.Barcode]; !ok {
			return product.ErrNotFound
		}
		normalized := p.NormalizedName()
		for code, other := range st.products {
			if code != p.Barcode && other.NormalizedName() == normalized {
				return product.ErrDuplicateName
			}
		}
		st.products[p.Barcode] = p.Clone()
		return nil
	})
}

func (r *productRepository) Delete(_ context.Context, barcode string) error {
	return r.access(func(st *state) error {
		if _, ok := st.products[barcode]; !ok {
			return product.ErrNotFound
		}
		delete(st.products, barcode)

		kept := st.movements[:0]
		for _, m := range st.movements {
			if m.Barcode != barcode {
				kept = append(kept, m)
			}
		}
		st.movements = kept
		return nil
	})
}

type movementRepository struct {
	access access
}

func (r *movementRepository) Create(_ context.Context, m *product.Movement) error {
	return r.access(func(st *state) error {
		if _, ok := st.products[m.Barcode]; !ok {
			return product.ErrNotFound
		}
		st.nextMovementID++
		m.ID = st.nextMovementID
		mc := *m
		st.movements = append(st.movements, &mc)
		return nil
	})
}

func (r *movementRepository) ListByBarcode(_ context.Context, barcode string) ([]*product.Movement, error) {
	var out []*product.Movement
	err := r.access(func(st *state) error {
		for i := len(st.movements) - 1; i >= 0; i-- {
			if st.movements[i].Barcode == barcode {
				mc := *st.movements[i]
				out = append(out, &mc)
			}
		}
		return nil
	})
	return out, err
}
