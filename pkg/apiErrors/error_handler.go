package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro da API
const (
	// Erros de autenticação (1000-1999)
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes

	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrUnknownProvider     = "VAL_004" // Provedor de IA desconhecido
	ErrMethodNotAllowed    = "VAL_005" // Método HTTP não suportado pela rota

	// Erros de recursos (3000-3999)
	ErrAccountNotFound        = "RES_001" // Conta externa não encontrada
	ErrCampaignNotFound       = "RES_002" // Campanha não encontrada
	ErrRecommendationNotFound = "RES_003" // Recomendação não encontrada
	ErrRecommendationResolved = "RES_004" // Recomendação já aplicada ou descartada
	ErrNoAdsConnection        = "RES_005" // Usuário sem conexão ativa com a plataforma
	ErrRouteNotFound          = "RES_006" // Rota inexistente

	// Erros de integração (4000-4999)
	ErrInvalidAdsCredential  = "INT_001" // Credencial da plataforma de anúncios inutilizável
	ErrSyncAlreadyRunning    = "INT_002" // Sincronização já em andamento
	ErrInsufficientProviders = "INT_003" // Menos de dois provedores de IA responderam
	ErrProviderUnavailable   = "INT_004" // Provedor de IA sem credencial configurada
	ErrProviderFailed        = "INT_005" // Provedor de IA não respondeu

	// Erros do servidor (5000-5999)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
	ErrCommunication     = "SRV_004" // Erro de comunicação
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidToken:           http.StatusUnauthorized,
	ErrExpiredToken:           http.StatusUnauthorized,
	ErrInsufficientPrivilege:  http.StatusForbidden,
	ErrInvalidRequest:         http.StatusBadRequest,
	ErrMissingRequiredData:    http.StatusBadRequest,
	ErrInvalidFormat:          http.StatusBadRequest,
	ErrUnknownProvider:        http.StatusBadRequest,
	ErrMethodNotAllowed:       http.StatusMethodNotAllowed,
	ErrAccountNotFound:        http.StatusNotFound,
	ErrCampaignNotFound:       http.StatusNotFound,
	ErrRecommendationNotFound: http.StatusNotFound,
	ErrRecommendationResolved: http.StatusConflict,
	ErrNoAdsConnection:        http.StatusConflict,
	ErrRouteNotFound:          http.StatusNotFound,
	ErrInvalidAdsCredential:   http.StatusUnprocessableEntity,
	ErrSyncAlreadyRunning:     http.StatusConflict,
	ErrInsufficientProviders:  http.StatusServiceUnavailable,
	ErrProviderUnavailable:    http.StatusServiceUnavailable,
	ErrProviderFailed:         http.StatusBadGateway,
	ErrInternalServer:         http.StatusInternalServerError,
	ErrDatabaseOperation:      http.StatusInternalServerError,
	ErrExternalService:        http.StatusBadGateway,
	ErrCommunication:          http.StatusServiceUnavailable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor devolve o status HTTP associado ao código
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
// Útil para quando você quer envolver um erro existente em um erro de API
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
