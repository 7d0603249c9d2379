package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, production := range []bool{true, false} {
		l, err := New(production)
		require.NoError(t, err)
		assert.NotNil(t, l)
	}
}

func TestGormLoggerWritesThroughZap(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	gl := GormLogger(zap.New(core))

	gl.Warn(context.Background(), "slow query on %s", "accounts")

	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "slow query on accounts")
	assert.Equal(t, "gorm", logs.All()[0].LoggerName)
}
