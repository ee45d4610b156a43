// Package log carrega um *logrus.Entry no contexto. A requisição HTTP, a passada de
// sincronização e o pedido de consenso acumulam campos (correlation_id, user_id,
// trigger) e todo log feito com ForContext(ctx) sai com eles.
package log

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Fields é um alias para logrus.Fields
type Fields = logrus.Fields

// CorrelationIDField é o campo de log que liga as linhas de uma mesma operação
const CorrelationIDField = "correlation_id"

type entryKey struct{}

var development = true

// Setup ajusta o logger global a partir de APP_ENV e LOG_LEVEL. Fora de desenvolvimento
// os logs saem em JSON. Nível inválido cai para info.
func Setup(env, level string) logrus.Level {
	development = isDevelopmentEnv(env)

	if development {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	} else {
		logrus.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
	}

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", level)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	return logLevel
}

// IsDevelopment indica se Setup foi chamado com um ambiente de desenvolvimento
func IsDevelopment() bool {
	return development
}

func isDevelopmentEnv(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "", "dev", "development", "local":
		return true
	}
	return false
}

// WithFields devolve um contexto cujo logger carrega também os campos informados
func WithFields(ctx context.Context, fields Fields) context.Context {
	return context.WithValue(ctx, entryKey{}, ForContext(ctx).WithFields(fields))
}

// WithCorrelationID marca o contexto com o id informado, ou com um novo quando vazio
func WithCorrelationID(ctx context.Context, correlationID string) (context.Context, string) {
	if correlationID == "" {
		correlationID = uuid.NewString()
	}
	return WithFields(ctx, Fields{CorrelationIDField: correlationID}), correlationID
}

// ForContext devolve o logger do contexto; sem um, o logger global sem campos
func ForContext(ctx context.Context) *logrus.Entry {
	if ctx != nil {
		if entry, ok := ctx.Value(entryKey{}).(*logrus.Entry); ok {
			return entry
		}
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// CorrelationID obtém o id de correlação do contexto, ou "" se não houver
func CorrelationID(ctx context.Context) string {
	id, _ := ForContext(ctx).Data[CorrelationIDField].(string)
	return id
}
