package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/hugohenrick/pos-inventario/internal/domain/product"
	"github.com/hugohenrick/pos-inventario/pkg/apperror"
	"github.com/hugohenrick/pos-inventario/pkg/logger"
	"github.com/hugohenrick/pos-inventario/pkg/repository"
)

// Erros de entrada do catálogo
var (
	ErrNothingToUpdate  = errors.New("no se enviaron campos para actualizar")
	ErrRestockQuantity  = errors.New("cantidad debe ser un entero entre 1 y 2147483647")
	ErrBarcodeMalformed = errors.New("codigoBarras es obligatorio")
)

// CatalogService implementa o CRUD de produtos
type CatalogService struct {
	store    repository.Store
	stock    *StockControl
	barcodes *product.BarcodeGenerator
	log      logger.Logger
	now      func() time.Time
}

// NewCatalogService cria uma nova instância de CatalogService
func NewCatalogService(store repository.Store, stock *StockControl, barcodes *product.BarcodeGenerator, log logger.Logger) *CatalogService {
	return &CatalogService{
		store:    store,
		stock:    stock,
		barcodes: barcodes,
		log:      log,
		now:      time.Now,
	}
}

// Add cria um produto com código de barras gerado
func (s *CatalogService) Add(ctx context.Context, d product.Draft) (*product.Product, error) {
	if err := d.Validate(); err != nil {
		return nil, apperror.Validation("Datos del producto incompletos o inválidos", err)
	}

	var created *product.Product
	err := s.store.Within(ctx, func(ctx context.Context, tx repository.Repositories) error {
		taken, err := tx.Products().ExistsByNormalizedName(ctx, product.NormalizeName(d.Name), "")
		if err != nil {
			return persistence(err)
		}
		if taken {
			return productErr(product.ErrDuplicateName)
		}

		code, err := s.barcodes.GenerateUnique(ctx, tx.Products().ExistsByBarcode)
		if errors.Is(err, product.ErrGenerationExhausted) {
			return apperror.Internal("No fue posible generar un código de barras único", err)
		}
		if err != nil {
			return persistence(err)
		}

		p := product.New(code, d, s.now())
		if err := tx.Products().Create(ctx, p); err != nil {
			return productErr(err)
		}
		if err := s.stock.Opening(ctx, tx, p); err != nil {
			return err
		}
		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("producto agregado", "codigo_barras", created.Barcode, "cantidad", created.Quantity)
	return created, nil
}

// List lista o catálogo; catálogo vazio é NotFound
func (s *CatalogService) List(ctx context.Context) ([]*product.Product, error) {
	products, err := s.store.Products().List(ctx)
	if err != nil {
		return nil, persistence(err)
	}
	if len(products) == 0 {
		return nil, apperror.NotFound("No hay productos registrados", product.ErrNotFound)
	}
	return products, nil
}

// Get busca um produto pelo código de barras
func (s *CatalogService) Get(ctx context.Context, barcode string) (*product.Product, error) {
	p, err := s.store.Products().FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, productErr(err)
	}
	return p, nil
}

// Update aplica uma atualização parcial. O status nunca é recebido, apenas derivado.
func (s *CatalogService) Update(ctx context.Context, barcode string, patch product.Patch) (*product.Product, error) {
	if patch == (product.Patch{}) {
		return nil, apperror.Validation("Datos del producto incompletos o inválidos", ErrNothingToUpdate)
	}
	if err := patch.Validate(); err != nil {
		return nil, apperror.Validation("Datos del producto incompletos o inválidos", err)
	}

	var updated *product.Product
	err := s.store.Within(ctx, func(ctx context.Context, tx repository.Repositories) error {
		p, err := tx.Products().FindByBarcodeForUpdate(ctx, barcode)
		if err != nil {
			return productErr(err)
		}

		if patch.Name != nil {
			taken, err := tx.Products().ExistsByNormalizedName(ctx, product.NormalizeName(*patch.Name), barcode)
			if err != nil {
				return persistence(err)
			}
			if taken {
				return productErr(product.ErrDuplicateName)
			}
		}

		p.ApplyPatch(patch)
		if patch.Quantity != nil && *patch.Quantity != p.Quantity {
			updated, err = s.stock.Set(ctx, tx, p, *patch.Quantity)
			return err
		}

		p.UpdatedAt = s.now()
		if err := tx.Products().Update(ctx, p); err != nil {
			return productErr(err)
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Restock soma quantity ao estoque de um produto existente
func (s *CatalogService) Restock(ctx context.Context, barcode string, quantity int) (*product.Product, error) {
	var errs []error
	if barcode == "" {
		errs = append(errs, ErrBarcodeMalformed)
	}
	if quantity <= 0 || quantity > product.MaxQuantity {
		errs = append(errs, ErrRestockQuantity)
	}
	if len(errs) > 0 {
		return nil, apperror.Validation("Datos incompletos o inválidos", errors.Join(errs...))
	}

	var restocked *product.Product
	err := s.store.Within(ctx, func(ctx context.Context, tx repository.Repositories) error {
		if _, err := tx.Products().FindByBarcodeForUpdate(ctx, barcode); err != nil {
			return productErr(err)
		}
		p, err := s.stock.Apply(ctx, tx, Adjustment{
			Barcode: barcode,
			Delta:   quantity,
			Kind:    product.MovementRestock,
		})
		if err != nil {
			return err
		}
		restocked = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("stock aumentado", "codigo_barras", barcode, "cantidad", quantity, "total", restocked.Quantity)
	return restocked, nil
}

// Remove apaga um produto pelo código de barras
func (s *CatalogService) Remove(ctx context.Context, barcode string) error {
	if err := s.store.Products().Delete(ctx, barcode); err != nil {
		return productErr(err)
	}
	s.log.Info("producto eliminado", "codigo_barras", barcode)
	return nil
}

// Movements lista o histórico de estoque de um produto
func (s *CatalogService) Movements(ctx context.Context, barcode string) ([]*product.Movement, error) {
	if _, err := s.store.Products().FindByBarcode(ctx, barcode); err != nil {
		return nil, productErr(err)
	}
	moves, err := s.store.Movements().ListByBarcode(ctx, barcode)
	if err != nil {
		return nil, persistence(err)
	}
	return moves, nil
}
