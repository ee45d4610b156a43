// Package llm contém os clientes dos provedores de IA generativa.
// Cada cliente traduz a chamada genérica Generate para o formato de um fornecedor.
package llm

//go:generate mockgen -source=llm.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxRetries = 2

var (
	ErrMissingAPIKey = errors.New("API key not configured")
	ErrRateLimited   = errors.New("rate limit exceeded (429)")
	ErrEmptyResponse = errors.New("no completion returned")
)

// Generator é a capacidade mínima de um provedor: gerar texto a partir de um prompt
type Generator interface {
	Name() domain.ProviderName
	Model() string
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// StatusError é uma resposta HTTP não-200 do fornecedor
type StatusError struct {
	Provider   domain.ProviderName
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: API request failed with status %d: %s", e.Provider, e.StatusCode, e.Body)
}

func (e *StatusError) retryable() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

// doWithRetry envia a requisição montada por build e devolve o corpo da resposta 200.
// 429 e 5xx são repetidos com backoff exponencial enquanto o contexto permitir.
func doWithRetry(
	ctx context.Context,
	httpClient *http.Client,
	provider domain.ProviderName,
	build func(ctx context.Context) (*http.Request, error),
) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}

			logrus.WithFields(logrus.Fields{
				"provider": provider.String(),
				"attempt":  attempt,
				"error":    lastErr.Error(),
			}).Warn("llm: retrying request")
		}

		req, err := build(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		body, err := do(httpClient, provider, req)
		if err == nil {
			return body, nil
		}

		lastErr = err

		var statusErr *StatusError
		switch {
		case errors.Is(err, ErrRateLimited):
		case errors.As(err, &statusErr) && statusErr.retryable():
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case errors.As(err, &statusErr):
			return nil, err
		}
	}

	return nil, lastErr
}

func do(httpClient *http.Client, provider domain.ProviderName, req *http.Request) ([]byte, error) {
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Provider: provider, StatusCode: resp.StatusCode, Body: truncate(string(body), 512)}
	}

	return body, nil
}

// withDefaultTimeout aplica o timeout do cliente quando o contexto não tem prazo
func withDefaultTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline || timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
