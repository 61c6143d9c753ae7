package sale

import (
	"fmt"
	"strings"
)

// Shortage descreve um produto sem estoque suficiente
type Shortage struct {
	Barcode   string `json:"codigoBarras"`
	Available int    `json:"disponible"`
	Requested int    `json:"solicitado"`
}

// AvailabilityError agrupa as linhas rejeitadas pela verificação de estoque
type AvailabilityError struct {
	Unavailable []string
	Shortages   []Shortage
}

// Empty indica que nenhuma linha foi rejeitada
func (e *AvailabilityError) Empty() bool {
	return len(e.Unavailable) == 0 && len(e.Shortages) == 0
}

func (e *AvailabilityError) Error() string {
	var parts []string
	if len(e.Unavailable) > 0 {
		parts = append(parts, fmt.Sprintf("%s: %s", ErrProductUnavailable, strings.Join(e.Unavailable, ", ")))
	}
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s: %s (disponible %d, solicitado %d)", ErrInsufficientStock, s.Barcode, s.Available, s.Requested))
	}
	return strings.Join(parts, "; ")
}

// Is permite errors.Is(err, ErrProductUnavailable) e errors.Is(err, ErrInsufficientStock)
func (e *AvailabilityError) Is(target error) bool {
	switch target {
	case ErrProductUnavailable:
		return len(e.Unavailable) > 0
	case ErrInsufficientStock:
		return len(e.Shortages) > 0
	}
	return false
}

// Details devolve o corpo legível por máquina da resposta de erro
func (e *AvailabilityError) Details() map[string]interface{} {
	details := map[string]interface{}{}
	if len(e.Unavailable) > 0 {
		details["codigosAgotados"] = e.Unavailable
	}
	if len(e.Shortages) > 0 {
		details["productosSinStock"] = e.Shortages
	}
	return details
}
