package log

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithCorrelationID(t *testing.T) {
	tests := []struct {
		name     string
		given    string
		validate func(t *testing.T, id string)
	}{
		{
			name:  "Reaproveita o id recebido",
			given: "req-123",
			validate: func(t *testing.T, id string) {
				assert.Equal(t, "req-123", id)
			},
		},
		{
			name: "Gera um id quando vazio",
			validate: func(t *testing.T, id string) {
				assert.Len(t, id, 36)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, id := WithCorrelationID(context.Background(), tt.given)

			tt.validate(t, id)
			assert.Equal(t, id, CorrelationID(ctx))
		})
	}
}

func TestForContext(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	ctx, _ := WithCorrelationID(context.Background(), "pass-1")
	ctx = WithFields(ctx, Fields{"trigger": "manual"})
	child := WithFields(ctx, Fields{"user_id": 42})

	ForContext(child).Info("sincronizando identidade")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "pass-1", entry.Data[CorrelationIDField])
	assert.Equal(t, "manual", entry.Data["trigger"])
	assert.Equal(t, 42, entry.Data["user_id"])

	// o contexto pai não herda campos do filho
	assert.NotContains(t, ForContext(ctx).Data, "user_id")
}

func TestForContextSemLogger(t *testing.T) {
	assert.Empty(t, ForContext(context.Background()).Data)
	assert.Equal(t, "", CorrelationID(context.Background()))
}

func TestSetup(t *testing.T) {
	defer Setup("development", "info")

	assert.Equal(t, logrus.WarnLevel, Setup("production", "warn"))
	assert.False(t, IsDevelopment())
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)

	assert.Equal(t, logrus.InfoLevel, Setup("dev", "verbose"))
	assert.True(t, IsDevelopment())
	assert.IsType(t, &logrus.TextFormatter{}, logrus.StandardLogger().Formatter)
}
