package dto

// ErrorResponse representa a estrutura de resposta para erros
type ErrorResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"msg"`
	Details interface{} `json:"details,omitempty"`
}

// MessageResponse representa uma resposta que só leva uma mensagem
type MessageResponse struct {
	Message string `json:"msg"`
}

// NewErrorResponse cria uma nova resposta de erro
func NewErrorResponse(code int, message string, details interface{}) ErrorResponse {
	return ErrorResponse{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewMessageResponse cria uma resposta só com mensagem
func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{Message: message}
}
