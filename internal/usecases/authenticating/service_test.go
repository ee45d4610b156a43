package authenticating

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-advisor-api/internal/config"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims domain.Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestService_ValidateToken(t *testing.T) {
	svc := NewService(&config.Config{Auth: config.Auth{Secret: testSecret}})

	valid := domain.Claims{
		UserID:     42,
		UserEmail:  "ana@example.com",
		UserRoleID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	expired := valid
	expired.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}

	anonymous := valid
	anonymous.UserID = 0

	tests := []struct {
		name        string
		token       string
		expectedErr error
	}{
		{
			name:  "Token válido",
			token: signToken(t, jwt.SigningMethodHS256, []byte(testSecret), valid),
		},
		{
			name:        "Token expirado",
			token:       signToken(t, jwt.SigningMethodHS256, []byte(testSecret), expired),
			expectedErr: ErrExpiredToken,
		},
		{
			name:        "Assinado com outro segredo",
			token:       signToken(t, jwt.SigningMethodHS256, []byte("other"), valid),
			expectedErr: ErrInvalidToken,
		},
		{
			name:        "Sem usuário nas claims",
			token:       signToken(t, jwt.SigningMethodHS256, []byte(testSecret), anonymous),
			expectedErr: ErrInvalidToken,
		},
		{
			name:        "Token malformado",
			token:       "not-a-jwt",
			expectedErr: ErrInvalidToken,
		},
		{
			name:        "Token vazio",
			token:       "",
			expectedErr: ErrMissingToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateToken(tt.token)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectedErr))
				assert.True(t, IsAuthorizationError(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 42, claims.UserID)
			assert.Equal(t, 1, claims.UserRoleID)
		})
	}
}
