package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hugohenrick/pos-inventario/internal/domain/sale"
	"github.com/hugohenrick/pos-inventario/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

const saleColumns = `id, sold_at, items, total, payment_method, document_number, document_description,
	customer_name, customer_national_id, note`

// SaleRepository implementa a interface sale.Repository usando PostgreSQL.
// As linhas da venda ficam numa coluna JSONB com os preços congelados.
type SaleRepository struct {
	db database.DBTX
}

// NewSaleRepository cria uma nova instância de SaleRepository
func NewSaleRepository(db database.DBTX) *SaleRepository {
	return &SaleRepository{db: db}
}

// Create implementa sale.Repository.Create
func (r *SaleRepository) Create(ctx context.Context, s *sale.Sale) error {
	items, err := json.Marshal(s.Items)
	if err != nil {
		return fmt.Errorf("falha ao serializar itens da venda: %w", err)
	}
	number, description := transferColumns(s.Transfer)

	err = r.db.QueryRow(ctx, `
		INSERT INTO sales (
			sold_at, items, total, payment_method, document_number, document_description,
			customer_name, customer_national_id, note
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		s.SoldAt, items, s.Total, string(s.PaymentMethod), number, description,
		s.CustomerName, s.CustomerNationalID, s.Note,
	).Scan(&s.ID)
	if err != nil {
		return database.MapError(fmt.Errorf("falha ao inserir venda: %w", err))
	}
	return nil
}

// FindByID implementa sale.Repository.FindByID
func (r *SaleRepository) FindByID(ctx context.Context, id int64) (*sale.Sale, error) {
	s, err := scanSale(r.db.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sale.ErrNotFound
		}
		return nil, fmt.Errorf("falha ao buscar venda: %w", err)
	}
	return s, nil
}

// List implementa sale.Repository.List
func (r *SaleRepository) List(ctx context.Context) ([]*sale.Sale, error) {
	rows, err := r.db.Query(ctx, `SELECT `+saleColumns+` FROM sales ORDER BY sold_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar vendas: %w", err)
	}
	defer rows.Close()

	sales := make([]*sale.Sale, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler venda: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar vendas: %w", err)
	}
	return sales, nil
}

// Update implementa sale.Repository.Update; só observação e documento mudam
func (r *SaleRepository) Update(ctx context.Context, s *sale.Sale) error {
	number, description := transferColumns(s.Transfer)
	tag, err := r.db.Exec(ctx, `
		UPDATE sales SET note = $2, document_number = $3, document_description = $4
		WHERE id = $1`,
		s.ID, s.Note, number, description,
	)
	if err != nil {
		return database.MapError(fmt.Errorf("falha ao atualizar venda: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return sale.ErrNotFound
	}
	return nil
}

// Delete implementa sale.Repository.Delete
func (r *SaleRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return database.MapError(fmt.Errorf("falha ao remover venda: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return sale.ErrNotFound
	}
	return nil
}

func transferColumns(doc *sale.TransferDocument) (*string, *string) {
	if doc == nil {
		return nil, nil
	}
	return &doc.Number, &doc.Description
}

func scanSale(row pgx.Row) (*sale.Sale, error) {
	s := &sale.Sale{}
	var (
		items       []byte
		method      string
		number      *string
		description *string
	)
	err := row.Scan(&s.ID, &s.SoldAt, &items, &s.Total, &method, &number, &description,
		&s.CustomerName, &s.CustomerNationalID, &s.Note)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &s.Items); err != nil {
		return nil, fmt.Errorf("itens da venda %d corrompidos: %w", s.ID, err)
	}
	s.PaymentMethod = sale.PaymentMethod(method)
	if number != nil || description != nil {
		s.Transfer = &sale.TransferDocument{}
		if number != nil {
			s.Transfer.Number = *number
		}
		if description != nil {
			s.Transfer.Description = *description
		}
	}
	return s, nil
}
