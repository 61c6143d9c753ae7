package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hugohenrick/pos-inventario/internal/domain/product"
	"github.com/hugohenrick/pos-inventario/internal/domain/sale"
	"github.com/hugohenrick/pos-inventario/pkg/apperror"
	"github.com/hugohenrick/pos-inventario/pkg/logger"
	"github.com/hugohenrick/pos-inventario/pkg/metrics"
	"github.com/hugohenrick/pos-inventario/pkg/repository"
)

// DefaultSaleAttempts é o número de tentativas diante de conflitos de serialização
const DefaultSaleAttempts = 3

// ErrSaleInProgress indica outra requisição em curso com a mesma chave de idempotência
var ErrSaleInProgress = fmt.Errorf("%w: venta en curso con la misma clave", apperror.ErrTxConflict)

// SaleService implementa o registro e a manutenção de vendas
type SaleService struct {
	store       repository.Store
	stock       *StockControl
	idempotency IdempotencyStore
	events      EventPublisher
	metrics     *metrics.Metrics
	log         logger.Logger
	maxAttempts int
	backoff     time.Duration
	now         func() time.Time
}

// SaleOption configura um SaleService
type SaleOption func(*SaleService)

// WithIdempotency habilita chaves de idempotência no registro
func WithIdempotency(store IdempotencyStore) SaleOption {
	return func(s *SaleService) { s.idempotency = store }
}

// WithEvents define o publicador de eventos
func WithEvents(p EventPublisher) SaleOption {
	return func(s *SaleService) { s.events = p }
}

// WithMetrics define os coletores prometheus
func WithMetrics(m *metrics.Metrics) SaleOption {
	return func(s *SaleService) { s.metrics = m }
}

// WithMaxAttempts limita as tentativas da transação de venda
func WithMaxAttempts(n int) SaleOption {
	return func(s *SaleService) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithRetryBackoff define a espera base entre tentativas
func WithRetryBackoff(d time.Duration) SaleOption {
	return func(s *SaleService) { s.backoff = d }
}

// NewSaleService cria uma nova instância de SaleService
func NewSaleService(store repository.Store, stock *StockControl, log logger.Logger, opts ...SaleOption) *SaleService {
	s := &SaleService{
		store:       store,
		stock:       stock,
		events:      NopPublisher{},
		log:         log,
		maxAttempts: DefaultSaleAttempts,
		backoff:     20 * time.Millisecond,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register valida, verifica estoque, grava a venda e baixa o estoque numa única transação.
// replayed indica que a venda foi devolvida por uma chave de idempotência já usada.
func (s *SaleService) Register(ctx context.Context, req sale.Request, idempotencyKey string) (*sale.Sale, bool, error) {
	if err := req.Validate(); err != nil {
		s.metrics.SaleRejected("validation")
		return nil, false, apperror.Validation("Datos de la venta incompletos o inválidos", err)
	}

	key := strings.TrimSpace(idempotencyKey)
	fingerprint := ""
	reserved := false
	if key != "" && s.idempotency != nil {
		fingerprint = req.Fingerprint()
		prior, err := s.claim(ctx, key, fingerprint)
		if err != nil {
			return nil, false, err
		}
		if prior != nil {
			return prior, true, nil
		}
		reserved = true
	}

	created, exhausted, err := s.registerWithRetry(ctx, req)
	if err != nil {
		if reserved {
			if relErr := s.idempotency.Release(context.WithoutCancel(ctx), key); relErr != nil {
				s.log.Warn("falha ao liberar chave de idempotência", "chave", key, "erro", relErr)
			}
		}
		return nil, false, err
	}

	if reserved {
		if cErr := s.idempotency.Complete(context.WithoutCancel(ctx), key, fingerprint, created.ID); cErr != nil {
			s.log.Warn("falha ao gravar chave de idempotência", "chave", key, "venta_id", created.ID, "erro", cErr)
		}
	}

	s.metrics.SaleRegistered(string(created.PaymentMethod))
	s.publish(ctx, created, exhausted)
	s.log.Info("venta registrada", "venta_id", created.ID, "total", created.Total.StringFixed(2), "items", len(created.Items))
	return created, false, nil
}

// claim reserva a chave de idempotência. Devolve a venda já registrada com ela,
// ou nil quando a chave ficou reservada para este pedido.
func (s *SaleService) claim(ctx context.Context, key, fingerprint string) (*sale.Sale, error) {
	for attempt := 1; ; attempt++ {
		existing, ok, err := s.idempotency.Reserve(ctx, key, fingerprint)
		if errors.Is(err, ErrIdempotencyKeyReused) {
			s.log.Warn("chave de idempotência reutilizada com outro pedido", "chave", key)
			return nil, apperror.Conflict("La clave de idempotencia ya se usó con otra venta", err)
		}
		if err != nil {
			return nil, persistence(fmt.Errorf("falha ao reservar chave de idempotência: %w", err))
		}
		if ok {
			return nil, nil
		}
		if existing == 0 {
			return nil, apperror.Conflict("Ya hay una venta en curso con la misma clave", ErrSaleInProgress)
		}

		prior, err := s.Get(ctx, existing)
		if err == nil {
			return prior, nil
		}
		if attempt > 1 || apperror.KindOf(err) != apperror.KindNotFound {
			return nil, err
		}
		// a venda foi apagada; a chave volta a ficar livre
		if err := s.idempotency.Release(ctx, key); err != nil {
			return nil, persistence(fmt.Errorf("falha ao liberar chave de idempotência: %w", err))
		}
	}
}

func (s *SaleService) registerWithRetry(ctx context.Context, req sale.Request) (*sale.Sale, []string, error) {
	for attempt := 1; ; attempt++ {
		created, exhausted, err := s.registerOnce(ctx, req)
		if err == nil {
			return created, exhausted, nil
		}

		if !errors.Is(err, apperror.ErrTxConflict) {
			var avail *sale.AvailabilityError
			if errors.As(err, &avail) {
				s.metrics.SaleRejected(rejectionReason(avail))
				s.log.Info("venta rechazada", "motivo", avail.Error())
			}
			return nil, nil, err
		}

		if attempt >= s.maxAttempts {
			s.metrics.SaleRejected("conflict")
			s.log.Error("venta abortada tras conflictos repetidos", "tentativas", attempt, "erro", err)
			return nil, nil, apperror.Conflict("La venta no pudo completarse por operaciones concurrentes, intente nuevamente", err)
		}

		s.metrics.SaleRetried()
		s.log.Warn("conflito de concorrência ao registrar venda, repetindo", "tentativa", attempt)
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * s.backoff):
		}
	}
}

func rejectionReason(e *sale.AvailabilityError) string {
	if len(e.Unavailable) > 0 {
		return "unavailable"
	}
	return "insufficient_stock"
}

func (s *SaleService) registerOnce(ctx context.Context, req sale.Request) (*sale.Sale, []string, error) {
	items := req.MergedItems()

	var created *sale.Sale
	var exhausted []string
	err := s.store.Within(ctx, func(ctx context.Context, tx repository.Repositories) error {
		exhausted = nil

		locked := make(map[string]*product.Product, len(items))
		for _, code := range sale.LockOrder(items) {
			p, err := tx.Products().FindByBarcodeForUpdate(ctx, code)
			if errors.Is(err, product.ErrNotFound) {
				continue
			}
			if err != nil {
				return persistence(err)
			}
			locked[code] = p
		}

		rejected := &sale.AvailabilityError{}
		for _, it := range items {
			p, ok := locked[it.Barcode]
			switch {
			case !ok || !p.IsAvailable():
				rejected.Unavailable = append(rejected.Unavailable, it.Barcode)
			case p.Quantity < it.Quantity:
				rejected.Shortages = append(rejected.Shortages, sale.Shortage{
					Barcode:   it.Barcode,
					Available: p.Quantity,
					Requested: it.Quantity,
				})
			}
		}
		if !rejected.Empty() {
			msg := "Stock insuficiente para algunos productos"
			if len(rejected.Unavailable) > 0 {
				msg = "Algunos productos no están disponibles"
			}
			return apperror.Validation(msg, rejected).WithDetails(rejected.Details())
		}

		lines := make([]sale.LineItem, 0, len(items))
		for _, it := range items {
			lines = append(lines, sale.NewLineItem(it.Barcode, it.Quantity, locked[it.Barcode].Price))
		}
		record := sale.New(req, lines, s.now())
		if err := tx.Sales().Create(ctx, record); err != nil {
			return persistence(err)
		}

		for _, it := range items {
			p, err := s.stock.Apply(ctx, tx, Adjustment{
				Barcode: it.Barcode,
				Delta:   -it.Quantity,
				Kind:    product.MovementSale,
				SaleID:  &record.ID,
			})
			if err != nil {
				return err
			}
			if !p.IsAvailable() {
				exhausted = append(exhausted, p.Barcode)
			}
		}

		created = record
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return created, exhausted, nil
}

func (s *SaleService) publish(ctx context.Context, created *sale.Sale, exhausted []string) {
	items := make([]SaleEventItem, 0, len(created.Items))
	for _, it := range created.Items {
		items = append(items, SaleEventItem{Barcode: it.Barcode, Quantity: it.Quantity, Subtotal: it.Subtotal})
	}

	saleKey := strconv.FormatInt(created.ID, 10)
	events := []Event{{
		Type:       EventSaleRegistered,
		Key:        saleKey,
		OccurredAt: created.SoldAt,
		Payload: SaleRegisteredPayload{
			SaleID:        created.ID,
			Total:         created.Total,
			PaymentMethod: string(created.PaymentMethod),
			Items:         items,
			SoldAt:        created.SoldAt,
		},
	}}
	for _, code := range exhausted {
		events = append(events, Event{
			Type:       EventProductExhausted,
			Key:        code,
			OccurredAt: created.SoldAt,
			Payload:    ProductExhaustedPayload{Barcode: code, SaleID: created.ID},
		})
	}

	for _, ev := range events {
		if err := s.events.Publish(ctx, ev); err != nil {
			s.log.Error("falha ao publicar evento", "tipo", ev.Type, "chave", ev.Key, "erro", err)
		}
	}
}

// List lista as vendas, mais recentes primeiro; nenhuma venda é NotFound
func (s *SaleService) List(ctx context.Context) ([]*sale.Sale, error) {
	sales, err := s.store.Sales().List(ctx)
	if err != nil {
		return nil, persistence(err)
	}
	if len(sales) == 0 {
		return nil, apperror.NotFound("No hay ventas registradas", sale.ErrNotFound)
	}
	return sales, nil
}

// Get busca uma venda pelo ID
func (s *SaleService) Get(ctx context.Context, id int64) (*sale.Sale, error) {
	found, err := s.store.Sales().FindByID(ctx, id)
	if err != nil {
		return nil, saleErr(err)
	}
	return found, nil
}

// Update corrige observação e documento de transferência
func (s *SaleService) Update(ctx context.Context, id int64, c sale.Correction) (*sale.Sale, error) {
	if c == (sale.Correction{}) {
		return nil, apperror.Validation("Datos de la venta incompletos o inválidos", ErrNothingToUpdate)
	}

	var updated *sale.Sale
	err := s.store.Within(ctx, func(ctx context.Context, tx repository.Repositories) error {
		found, err := tx.Sales().FindByID(ctx, id)
		if err != nil {
			return saleErr(err)
		}
		if err := c.Validate(found.PaymentMethod); err != nil {
			return apperror.Validation("Datos de la venta incompletos o inválidos", err)
		}
		found.ApplyCorrection(c)
		if err := tx.Sales().Update(ctx, found); err != nil {
			return saleErr(err)
		}
		updated = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete remove uma venda; o estoque não é devolvido
func (s *SaleService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Sales().Delete(ctx, id); err != nil {
		return saleErr(err)
	}
	s.log.Info("venta eliminada", "venta_id", id)
	return nil
}
