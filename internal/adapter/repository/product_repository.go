package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/pos-inventario/internal/domain/product"
	"github.com/hugohenrick/pos-inventario/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

const productColumns = `barcode, name, description, price, quantity, created_at, updated_at`

// ProductRepository implementa a interface product.Repository usando PostgreSQL
type ProductRepository struct {
	db database.DBTX
}

// NewProductRepository cria uma nova instância de ProductRepository
func NewProductRepository(db database.DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create implementa product.Repository.Create
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO products (
			barcode, name, normalized_name, description, price, quantity, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.Barcode, p.Name, p.NormalizedName(), p.Description, p.Price, p.Quantity, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return productWriteError(err, "falha ao inserir produto")
	}
	return nil
}

// FindByBarcode implementa product.Repository.FindByBarcode
func (r *ProductRepository) FindByBarcode(ctx context.Context, barcode string) (*product.Product, error) {
	return r.findOne(ctx, `SELECT `+productColumns+` FROM products WHERE barcode = $1`, barcode)
}

// FindByBarcodeForUpdate bloqueia a linha até o fim da transação
func (r *ProductRepository) FindByBarcodeForUpdate(ctx context.Context, barcode string) (*product.Product, error) {
	return r.findOne(ctx, `SELECT `+productColumns+` FROM products WHERE barcode = $1 FOR UPDATE`, barcode)
}

func (r *ProductRepository) findOne(ctx context.Context, query, barcode string) (*product.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, query, barcode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrNotFound
		}
		return nil, database.MapError(fmt.Errorf("falha ao buscar produto: %w", err))
	}
	return p, nil
}

// ExistsByBarcode implementa product.Repository.ExistsByBarcode
func (r *ProductRepository) ExistsByBarcode(ctx context.Context, barcode string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE barcode = $1)`, barcode).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("falha ao verificar código de barras: %w", err)
	}
	return exists, nil
}

// ExistsByNormalizedName implementa product.Repository.ExistsByNormalizedName
func (r *ProductRepository) ExistsByNormalizedName(ctx context.Context, normalized, exceptBarcode string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM products WHERE normalized_name = $1 AND barcode <> $2)`,
		normalized, exceptBarcode,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("falha ao verificar nome do produto: %w", err)
	}
	return exists, nil
}

// List implementa product.Repository.List
func (r *ProductRepository) List(ctx context.Context) ([]*product.Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at, barcode`)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar produtos: %w", err)
	}
	defer rows.Close()

	products := make([]*product.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler produto: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar produtos: %w", err)
	}
	return products, nil
}

// Update implementa product.Repository.Update
func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET name = $2, normalized_name = $3, description = $4, price = $5, quantity = $6, updated_at = $7
		WHERE barcode = $1`,
		p.Barcode, p.Name, p.NormalizedName(), p.Description, p.Price, p.Quantity, p.UpdatedAt,
	)
	if err != nil {
		return productWriteError(err, "falha ao atualizar produto")
	}
	if tag.RowsAffected() == 0 {
		return product.ErrNotFound
	}
	return nil
}

// Delete implementa product.Repository.Delete; as movimentações caem em cascata
func (r *ProductRepository) Delete(ctx context.Context, barcode string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE barcode = $1`, barcode)
	if err != nil {
		return database.MapError(fmt.Errorf("falha ao remover produto: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return product.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*product.Product, error) {
	p := &product.Product{}
	err := row.Scan(&p.Barcode, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func productWriteError(err error, msg string) error {
	if constraint, ok := database.IsUniqueViolation(err); ok {
		if constraint == "products_normalized_name_key" {
			return product.ErrDuplicateName
		}
		return product.ErrDuplicateBarcode
	}
	return database.MapError(fmt.Errorf("%s: %w", msg, err))
}

// MovementRepository implementa a interface product.MovementRepository usando PostgreSQL
type MovementRepository struct {
	db database.DBTX
}

// NewMovementRepository cria uma nova instância de MovementRepository
func NewMovementRepository(db database.DBTX) *MovementRepository {
	return &MovementRepository{db: db}
}

// Create implementa product.MovementRepository.Create
func (r *MovementRepository) Create(ctx context.Context, m *product.Movement) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO stock_movements (
			barcode, kind, delta, previous_quantity, new_quantity, sale_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		m.Barcode, string(m.Kind), m.Delta, m.PreviousQuantity, m.NewQuantity, m.SaleID, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return database.MapError(fmt.Errorf("falha ao registrar movimentação: %w", err))
	}
	return nil
}

// ListByBarcode implementa product.MovementRepository.ListByBarcode
func (r *MovementRepository) ListByBarcode(ctx context.Context, barcode string) ([]*product.Movement, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, barcode, kind, delta, previous_quantity, new_quantity, sale_id, created_at
		FROM stock_movements
		WHERE barcode = $1
		ORDER BY id DESC`, barcode)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar movimentações: %w", err)
	}
	defer rows.Close()

	moves := make([]*product.Movement, 0)
	for rows.Next() {
		m := &product.Movement{}
		var kind string
		if err := rows.Scan(&m.ID, &m.Barcode, &kind, &m.Delta, &m.PreviousQuantity, &m.NewQuantity, &m.SaleID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("falha ao ler movimentação: %w", err)
		}
		m.Kind = product.MovementKind(kind)
		moves = append(moves, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar movimentações: %w", err)
	}
	return moves, nil
}
