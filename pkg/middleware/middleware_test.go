package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-advisor-api/internal/config"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/authenticating"
	"github.com/vfg2006/campaign-advisor-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-advisor-api/pkg/log"
)

const testSecret = "middleware-secret"

func bearer(t *testing.T, userID, roleID int, expiresIn time.Duration) string {
	t.Helper()

	claims := domain.Claims{
		UserID:     userID,
		UserRoleID: roleID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthAndRoleMiddleware(t *testing.T) {
	authenticator := authenticating.NewService(&config.Config{Auth: config.Auth{Secret: testSecret}})

	var seenUser int
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := r.Context().Value(ContextKeyUser).(*domain.Claims); ok {
			seenUser = claims.UserID
		}
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name           string
		path           string
		authorization  string
		role           func() func(http.Handler) http.Handler
		expectedStatus int
		expectedCode   string
		expectedUser   int
	}{
		{
			name:           "Rota pública sem token",
			path:           "/healthcheck",
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "Sem cabeçalho Authorization",
			path:           "/v1/me/accounts",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrInvalidToken,
		},
		{
			name:           "Cabeçalho sem Bearer",
			path:           "/v1/me/accounts",
			authorization:  "Basic abc",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrInvalidToken,
		},
		{
			name:           "Token expirado",
			path:           "/v1/me/accounts",
			authorization:  bearer(t, 7, RoleClient, -time.Minute),
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrExpiredToken,
		},
		{
			name:           "Cliente autenticado",
			path:           "/v1/me/accounts",
			authorization:  bearer(t, 7, RoleClient, time.Hour),
			role:           AllRoles,
			expectedStatus: http.StatusNoContent,
			expectedUser:   7,
		},
		{
			name:           "Cliente em rota de administrador",
			path:           "/v1/sync/run",
			authorization:  bearer(t, 7, RoleClient, time.Hour),
			role:           AdminOnly,
			expectedStatus: http.StatusForbidden,
			expectedCode:   apiErrors.ErrInsufficientPrivilege,
		},
		{
			name:           "Administrador em rota de administrador",
			path:           "/v1/sync/run",
			authorization:  bearer(t, 1, RoleAdmin, time.Hour),
			role:           AdminOnly,
			expectedStatus: http.StatusNoContent,
			expectedUser:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seenUser = 0

			var routeHandler http.Handler = final
			if tt.role != nil {
				routeHandler = tt.role()(final)
			}
			h := alice.New(AuthMiddleware(authenticator)).Then(routeHandler)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedUser, seenUser)
			if tt.expectedCode != "" {
				var apiErr apiErrors.APIError
				require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &apiErr))
				assert.Equal(t, tt.expectedCode, apiErr.Code)
			}
		})
	}
}

func TestCors(t *testing.T) {
	h := Cors([]string{"http://localhost:3000", " https://app.example/ "})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	tests := []struct {
		name           string
		method         string
		origin         string
		expectedStatus int
		expectedOrigin string
	}{
		{
			name:           "Preflight de origem permitida",
			method:         http.MethodOptions,
			origin:         "http://localhost:3000",
			expectedStatus: http.StatusNoContent,
			expectedOrigin: "http://localhost:3000",
		},
		{
			name:           "Origem configurada com espaço e barra final",
			method:         http.MethodGet,
			origin:         "https://app.example",
			expectedStatus: http.StatusTeapot,
			expectedOrigin: "https://app.example",
		},
		{
			name:           "Origem desconhecida",
			method:         http.MethodGet,
			origin:         "https://evil.example",
			expectedStatus: http.StatusTeapot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/v1/recommendations", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			if tt.expectedOrigin != "" {
				assert.Equal(t, CorrelationIDHeader, rec.Header().Get("Access-Control-Expose-Headers"))
			}
		})
	}
}

func TestLoggingMiddleware(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	authenticator := authenticating.NewService(&config.Config{Auth: config.Auth{Secret: testSecret}})

	var handlerCorrelationID string
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCorrelationID = log.CorrelationID(r.Context())
		log.ForContext(r.Context()).Info("INIT - ListAccounts")
		w.WriteHeader(http.StatusNoContent)
	})
	h := alice.New(LoggingMiddleware(), AuthMiddleware(authenticator)).Then(final)

	t.Run("Reaproveita X-Request-ID e registra o usuário", func(t *testing.T) {
		hook.Reset()

		req := httptest.NewRequest(http.MethodGet, "/v1/me/accounts", nil)
		req.Header.Set("Authorization", bearer(t, 7, RoleClient, time.Hour))
		req.Header.Set(CorrelationIDHeader, "req-123")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "req-123", rec.Header().Get(CorrelationIDHeader))
		assert.Equal(t, "req-123", handlerCorrelationID)

		entries := hook.AllEntries()
		require.Len(t, entries, 2)

		handlerEntry := entries[0]
		assert.Equal(t, "INIT - ListAccounts", handlerEntry.Message)
		assert.Equal(t, 7, handlerEntry.Data["user_id"])
		assert.Equal(t, "req-123", handlerEntry.Data[log.CorrelationIDField])

		requestEntry := entries[1]
		assert.Equal(t, 7, requestEntry.Data["user_id"])
		assert.Equal(t, RoleClient, requestEntry.Data["user_role_id"])
		assert.Equal(t, http.StatusNoContent, requestEntry.Data["status_code"])
		assert.Equal(t, "req-123", requestEntry.Data[log.CorrelationIDField])
	})

	t.Run("Gera correlation_id e registra falha de autenticação como aviso", func(t *testing.T) {
		hook.Reset()

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/me/accounts", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Len(t, rec.Header().Get(CorrelationIDHeader), 36)

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, logrus.WarnLevel, entry.Level)
		assert.NotContains(t, entry.Data, "user_id")
		assert.Equal(t, rec.Header().Get(CorrelationIDHeader), entry.Data[log.CorrelationIDField])
	})
}

func TestLogPanicMiddleware(t *testing.T) {
	h := alice.New(LoggingMiddleware(), LogPanicMiddleware()).Then(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/me/accounts", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var apiErr apiErrors.APIError
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, apiErrors.ErrInternalServer, apiErr.Code)
}
