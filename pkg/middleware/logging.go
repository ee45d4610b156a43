package middleware

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"github.com/vfg2006/campaign-advisor-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-advisor-api/pkg/log"
)

// CorrelationIDHeader é lido da requisição e devolvido na resposta
const CorrelationIDHeader = "X-Request-ID"

// requestLog é preenchido pelos middlewares internos; o AuthMiddleware roda depois
// do LoggingMiddleware e só enxerga o contexto derivado
type requestLog struct {
	userID     int
	userRoleID int
}

type requestLogKey struct{}

// LoggingMiddleware marca a requisição com um correlation_id e registra uma linha ao
// final, com o usuário autenticado quando houver
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, correlationID := log.WithCorrelationID(r.Context(), r.Header.Get(CorrelationIDHeader))
			info := &requestLog{}
			ctx = context.WithValue(ctx, requestLogKey{}, info)
			r = r.WithContext(ctx)

			w.Header().Set(CorrelationIDHeader, correlationID)
			lrw := newLoggingResponseWriter(w)
			startTime := time.Now()

			next.ServeHTTP(lrw, r)

			elapsed := time.Since(startTime)
			fields := log.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": lrw.statusCode,
				"duration_ms": elapsed.Milliseconds(),
			}
			if info.userID != 0 {
				fields["user_id"] = info.userID
				fields["user_role_id"] = info.userRoleID
			}

			logger := log.ForContext(ctx).WithFields(fields)

			msg := "Requisição finalizada"
			if log.IsDevelopment() {
				msg = fmt.Sprintf("%s %s em %s", r.Method, r.URL.Path, formatDuration(elapsed))
			}

			switch {
			case lrw.statusCode >= 500:
				logger.Error(msg)
			case lrw.statusCode >= 400:
				logger.Warn(msg)
			default:
				logger.Info(msg)
			}
		})
	}
}

// annotateUser leva o usuário autenticado para o log da requisição e para os logs
// feitos com o contexto devolvido
func annotateUser(ctx context.Context, claims *domain.Claims) context.Context {
	if info, ok := ctx.Value(requestLogKey{}).(*requestLog); ok {
		info.userID = claims.UserID
		info.userRoleID = claims.UserRoleID
	}
	return log.WithFields(ctx, log.Fields{"user_id": claims.UserID})
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%d µs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%d ms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2f s", d.Seconds())
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func newLoggingResponseWriter(w http.ResponseWriter) *loggingResponseWriter {
	return &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	if !lrw.wroteHeader {
		lrw.statusCode = code
		lrw.wroteHeader = true
	}
	lrw.ResponseWriter.WriteHeader(code)
}

// LogPanicMiddleware converte panic em SRV_001. Deve vir depois do LoggingMiddleware
// para que o log do panic saia com o correlation_id.
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					stack := make([]byte, 4096)
					stack = stack[:runtime.Stack(stack, false)]

					logger := log.ForContext(r.Context()).WithFields(log.Fields{
						"panic_error": err,
						"method":      r.Method,
						"path":        r.URL.Path,
					})

					if log.IsDevelopment() {
						logger.Error("PANIC na aplicação")
						fmt.Fprintf(os.Stderr, "\n=== STACK TRACE ===\n%s\n", stack)
					} else {
						logger.WithField("stack_trace", string(stack)).Error("Erro não tratado na aplicação")
					}

					apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
