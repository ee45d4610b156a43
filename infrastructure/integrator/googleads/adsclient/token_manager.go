package adsclient

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-advisor-api/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// TokenManager mantém um TokenSource por refresh token, para que o access token
// seja reaproveitado entre chamadas até expirar
type TokenManager struct {
	oauthConfig *oauth2.Config
	mu          sync.Mutex
	sources     map[string]oauth2.TokenSource
}

func NewTokenManager(cfg *config.Config) *TokenManager {
	endpoint := google.Endpoint
	if cfg.GoogleAds.TokenURL != "" {
		endpoint.TokenURL = cfg.GoogleAds.TokenURL
	}

	return &TokenManager{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleAds.ClientID,
			ClientSecret: cfg.GoogleAds.ClientSecret,
			Endpoint:     endpoint,
			Scopes:       []string{"https://www.googleapis.com/auth/adwords"},
		},
		sources: make(map[string]oauth2.TokenSource),
	}
}

// HTTPClient devolve um cliente HTTP autenticado com o refresh token informado.
// O base transport é usado por baixo do oauth2.Transport (útil em testes).
func (tm *TokenManager) HTTPClient(ctx context.Context, refreshToken string, base *http.Client) *http.Client {
	if base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	}

	return oauth2.NewClient(ctx, tm.tokenSource(ctx, refreshToken))
}

func (tm *TokenManager) tokenSource(ctx context.Context, refreshToken string) oauth2.TokenSource {
	key := tokenKey(refreshToken)

	tm.mu.Lock()
	defer tm.mu.Unlock()

	if ts, ok := tm.sources[key]; ok {
		return ts
	}

	// O TokenSource guarda o contexto para as renovações seguintes,
	// por isso não usamos o contexto da requisição aqui
	ts := tm.oauthConfig.TokenSource(context.WithoutCancel(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tm.sources[key] = ts

	logrus.WithField("token_key", key[:8]).Debug("google ads: novo token source criado")
	return ts
}

// Forget descarta o token source de uma credencial (ex.: após desconexão)
func (tm *TokenManager) Forget(refreshToken string) {
	tm.mu.Lock()
	delete(tm.sources, tokenKey(refreshToken))
	tm.mu.Unlock()
}

func tokenKey(refreshToken string) string {
	sum := sha256.Sum256([]byte(refreshToken))
	return hex.EncodeToString(sum[:])
}
