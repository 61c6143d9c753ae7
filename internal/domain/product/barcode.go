package product

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
)

const (
	// BarcodeLength é o tamanho total do código, incluindo o dígito verificador
	BarcodeLength = 13
	// DefaultMaxAttempts limita as tentativas de gerar um código inédito
	DefaultMaxAttempts = 1000
)

// ErrGenerationExhausted indica que não foi encontrado código livre dentro do limite
var ErrGenerationExhausted = errors.New("no fue posible generar un código de barras único")

// ExistsFunc consulta se um código de barras já está em uso
type ExistsFunc func(ctx context.Context, barcode string) (bool, error)

// BarcodeGenerator gera códigos de 13 dígitos com dígito verificador
type BarcodeGenerator struct {
	mu          sync.Mutex
	rnd         *rand.Rand
	maxAttempts int
}

// NewBarcodeGenerator cria um gerador; rnd nil usa a fonte global de math/rand/v2
func NewBarcodeGenerator(rnd *rand.Rand, maxAttempts int) *BarcodeGenerator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &BarcodeGenerator{rnd: rnd, maxAttempts: maxAttempts}
}

func (g *BarcodeGenerator) digit() int {
	if g.rnd == nil {
		return rand.IntN(10)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rnd.IntN(10)
}

// Generate produz 12 dígitos aleatórios seguidos do dígito verificador
func (g *BarcodeGenerator) Generate() string {
	buf := make([]byte, BarcodeLength)
	for i := 0; i < BarcodeLength-1; i++ {
		buf[i] = byte('0' + g.digit())
	}
	check, _ := Checksum(string(buf[:BarcodeLength-1]))
	buf[BarcodeLength-1] = check
	return string(buf)
}

// GenerateUnique repete Generate até exists devolver false
func (g *BarcodeGenerator) GenerateUnique(ctx context.Context, exists ExistsFunc) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		code := g.Generate()
		taken, err := exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("falha ao verificar código de barras: %w", err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrGenerationExhausted
}

// Checksum calcula o dígito verificador dos 12 primeiros dígitos.
// Pesos alternam 1 e 3 a partir do índice 0.
func Checksum(first12 string) (byte, error) {
	if len(first12) != BarcodeLength-1 {
		return 0, fmt.Errorf("esperados %d dígitos, recebidos %d", BarcodeLength-1, len(first12))
	}
	sum := 0
	for i := 0; i < len(first12); i++ {
		c := first12[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("caractere não numérico na posição %d", i)
		}
		weight := 1
		if i%2 == 1 {
			weight = 3
		}
		sum += int(c-'0') * weight
	}
	return byte('0' + (10-sum%10)%10), nil
}

// ValidBarcode verifica tamanho, dígitos e dígito verificador
func ValidBarcode(code string) bool {
	if len(code) != BarcodeLength {
		return false
	}
	check, err := Checksum(code[:BarcodeLength-1])
	if err != nil {
		return false
	}
	return check == code[BarcodeLength-1]
}
