package apperror

import (
	"errors"
	"net/http"
)

// Kind classifica um erro de aplicação para a camada HTTP
type Kind string

// Constantes para Kind
const (
	KindValidation  Kind = "validation"
	KindNotFound    Kind = "not_found"
	KindConflict    Kind = "conflict"
	KindPersistence Kind = "persistence"
	KindInternal    Kind = "internal"
)

// ErrTxConflict sinaliza falha de serialização ou deadlock numa transação
var ErrTxConflict = errors.New("conflito de concorrência na transação")

// Error é o erro tipado devolvido pelos casos de uso
type Error struct {
	Kind    Kind
	Message string
	Details interface{}
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithDetails anexa detalhes legíveis por máquina ao erro
func (e *Error) WithDetails(details interface{}) *Error {
	e.Details = details
	return e
}

// New cria um novo erro de aplicação
func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation cria um erro de validação; as mensagens de err viram detalhes
func Validation(message string, err error) *Error {
	e := New(KindValidation, message, err)
	if err != nil {
		e.Details = Messages(err)
	}
	return e
}

// NotFound cria um erro de recurso inexistente
func NotFound(message string, err error) *Error {
	return New(KindNotFound, message, err)
}

// Conflict cria um erro de conflito (chave duplicada ou corrida de concorrência)
func Conflict(message string, err error) *Error {
	return New(KindConflict, message, err)
}

// Persistence encapsula uma falha de armazenamento
func Persistence(message string, err error) *Error {
	return New(KindPersistence, message, err)
}

// Internal representa a violação de um invariante interno
func Internal(message string, err error) *Error {
	return New(KindInternal, message, err)
}

// KindOf devolve o Kind de err; erros desconhecidos são tratados como persistência
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindPersistence
}

// HTTPStatus mapeia um erro para o status HTTP correspondente
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		if errors.Is(err, ErrTxConflict) {
			return http.StatusConflict
		}
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Messages achata erros combinados com errors.Join numa lista de mensagens
func Messages(err error) []string {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, Messages(e)...)
		}
		return out
	}
	return []string{err.Error()}
}
