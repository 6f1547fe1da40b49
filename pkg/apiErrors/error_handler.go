package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de erro retornados pela API
const (
	// Erros de canal/integração (1000-1999)
	ErrChannelUnknown            = "CHN_001" // Tipo de canal desconhecido
	ErrIntegrationNotFound       = "CHN_002" // Integração não encontrada
	ErrIntegrationAlreadyExists  = "CHN_003" // Já existe integração do canal para a organização
	ErrIntegrationTokenInvalid   = "CHN_004" // Token da integração inválido ou revogado
	ErrInvalidSignedRequest      = "CHN_005" // Assinatura do webhook inválida
	ErrOAuthExchangeFailed       = "CHN_006" // Troca do authorization code falhou
	ErrPreviewUnavailable        = "CHN_007" // Pré-visualização indisponível para o anúncio

	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes

	// Erros do servidor (5000-5999)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrChannelUnknown:           http.StatusBadRequest,
	ErrIntegrationNotFound:      http.StatusNotFound,
	ErrIntegrationAlreadyExists: http.StatusBadRequest,
	ErrIntegrationTokenInvalid:  http.StatusUnauthorized,
	ErrInvalidSignedRequest:     http.StatusBadRequest,
	ErrOAuthExchangeFailed:      http.StatusBadGateway,
	ErrPreviewUnavailable:       http.StatusNotFound,
	ErrInvalidRequest:           http.StatusBadRequest,
	ErrMissingRequiredData:      http.StatusBadRequest,
	ErrInternalServer:           http.StatusInternalServerError,
	ErrDatabaseOperation:        http.StatusInternalServerError,
	ErrExternalService:          http.StatusBadGateway,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
