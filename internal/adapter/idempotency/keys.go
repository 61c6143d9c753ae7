package idempotency

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hugohenrick/pos-inventario/internal/usecase"
)

const (
	// KeySaleCreate mapeia idem:sale:create:{chave} -> {venta_id|pending}|{impressão}
	KeySaleCreate = "idem:sale:create:%s"

	pendingValue = "pending"
	separator    = "|"
)

// DefaultTTL é o tempo de vida de uma chave de idempotência
var DefaultTTL = 24 * time.Hour

func saleKey(key string) string {
	return fmt.Sprintf(KeySaleCreate, key)
}

func pendingEntry(fingerprint string) string {
	return pendingValue + separator + fingerprint
}

func completedEntry(saleID int64, fingerprint string) string {
	return strconv.FormatInt(saleID, 10) + separator + fingerprint
}

// decodeEntry devolve a venda gravada (0 enquanto em curso) e a impressão do pedido
func decodeEntry(val string) (int64, string, error) {
	state, fingerprint, ok := strings.Cut(val, separator)
	if !ok {
		return 0, "", fmt.Errorf("valor de chave inválido %q", val)
	}
	if state == pendingValue {
		return 0, fingerprint, nil
	}
	id, err := strconv.ParseInt(state, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("valor de chave inválido %q: %w", val, err)
	}
	return id, fingerprint, nil
}

// resolve interpreta uma chave já existente para o pedido com a impressão dada
func resolve(val, fingerprint string) (int64, bool, error) {
	id, stored, err := decodeEntry(val)
	if err != nil {
		return 0, false, err
	}
	if stored != fingerprint {
		return 0, false, usecase.ErrIdempotencyKeyReused
	}
	return id, false, nil
}
