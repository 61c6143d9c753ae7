package memory

import (
	"context"
	"sort"

	"github.com/hugohenrick/pos-inventario/internal/domain/sale"
)

type saleRepository struct {
	access access
}

func (r *saleRepository) Create(_ context.Context, s *sale.Sale) error {
	return r.access(func(st *state) error {
		st.nextSaleID++
		s.ID = st.nextSaleID
		st.sales[s.ID] = s.Clone()
		return nil
	})
}

func (r *saleRepository) FindByID(_ context.Context, id int64) (*sale.Sale, error) {
	var found *sale.Sale
	err := r.access(func(st *state) error {
		s, ok := st.sales[id]
		if !ok {
			return sale.ErrNotFound
		}
		found = s.Clone()
		return nil
	})
	return found, err
}

func (r *saleRepository) List(_ context.Context) ([]*sale.Sale, error) {
	var out []*sale.Sale
	err := r.access(func(st *state) error {
		out = make([]*sale.Sale, 0, len(st.sales))
		for _, s := range st.sales {
			out = append(out, s.Clone())
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].SoldAt.Equal(out[j].SoldAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].SoldAt.After(out[j].SoldAt)
	})
	return out, err
}

func (r *saleRepository) Update(_ context.Context, s *sale.Sale) error {
	return r.access(func(st *state) error {
		if _, ok := st.sales[s.ID]; !ok {
			return sale.ErrNotFound
		}
		st.sales[s.ID] = s.Clone()
		return nil
	})
}

func (r *saleRepository) Delete(_ context.Context, id int64) error {
	return r.access(func(st *state) error {
		if _, ok := st.sales[id]; !ok {
			return sale.ErrNotFound
		}
		delete(st.sales, id)
		return nil
	})
}
