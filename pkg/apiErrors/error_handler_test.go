package apiErrors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name           string
		code           string
		details        any
		expectedStatus int
	}{
		{name: "Token expirado", code: ErrExpiredToken, expectedStatus: http.StatusUnauthorized},
		{name: "Provedor desconhecido", code: ErrUnknownProvider, expectedStatus: http.StatusBadRequest},
		{name: "Recomendação já resolvida", code: ErrRecommendationResolved, expectedStatus: http.StatusConflict},
		{name: "Provedores insuficientes", code: ErrInsufficientProviders, expectedStatus: http.StatusServiceUnavailable},
		{name: "Provedor falhou", code: ErrProviderFailed, expectedStatus: http.StatusBadGateway},
		{
			name:           "Campanha inexistente com detalhes",
			code:           ErrCampaignNotFound,
			details:        map[string]any{"id": "cmp-1"},
			expectedStatus: http.StatusNotFound,
		},
		{name: "Código desconhecido", code: "XYZ_999", expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			WriteError(rec, tt.code, "mensagem", tt.details)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body["code"])
			assert.Equal(t, "mensagem", body["message"])
			if tt.details == nil {
				assert.NotContains(t, body, "details")
			} else {
				assert.Equal(t, "cmp-1", body["details"].(map[string]any)["id"])
			}
		})
	}
}

func TestFromError(t *testing.T) {
	assert.Equal(t, ErrInternalServer, FromError(nil, ErrDatabaseOperation).Code)

	apiErr := FromError(errors.New("falhou"), ErrDatabaseOperation)
	assert.Equal(t, ErrDatabaseOperation, apiErr.Code)
	assert.Equal(t, "falhou", apiErr.Message)
}
