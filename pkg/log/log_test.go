package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	previous := logrus.StandardLogger().Out
	logrus.SetOutput(&buf)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	t.Cleanup(func() {
		logrus.SetOutput(previous)
		logrus.SetFormatter(&logrus.TextFormatter{})
	})

	return &buf
}

func TestWithCorrelationID(t *testing.T) {
	ctx, correlationID := WithCorrelationID(context.Background())

	_, err := uuid.Parse(correlationID)
	require.NoError(t, err)
	assert.Equal(t, correlationID, GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestForContext_IncluiTenantECorrelacao(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	buf := captureLogs(t)

	ctx, correlationID := WithCorrelationID(context.Background())
	ctx = WithTenantID(ctx, "tenant-a")

	ForContext(ctx).Info("teste")

	assert.Contains(t, buf.String(), `"tenant_id":"tenant-a"`)
	assert.Contains(t, buf.String(), correlationID)
}

func TestWithFields_FiltraEmDesenvolvimento(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	buf := captureLogs(t)

	L.WithFields(Fields{"path": "/v1/goals/2025", "user_agent": "curl", "query": "a=1"}).Info("teste")

	assert.Contains(t, buf.String(), `"path":"/v1/goals/2025"`)
	assert.Contains(t, buf.String(), `"user_agent":"curl"`)
	assert.NotContains(t, buf.String(), `"query"`)
}

func TestWithFields_MantemTudoEmProducao(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	buf := captureLogs(t)

	L.WithField("query", "a=1").Info("teste")

	assert.Contains(t, buf.String(), `"query":"a=1"`)
}
