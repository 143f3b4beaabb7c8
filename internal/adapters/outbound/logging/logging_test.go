package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abdidvp/editgate/internal/adapters/outbound/logging"
)

func TestNew_Debug(t *testing.T) {
	l, err := logging.New(true)
	require.NoError(t, err)
	assert.True(t, l.Desugar().Core().Enabled(zap.DebugLevel))
}

func TestNew_DefaultIsWarn(t *testing.T) {
	l, err := logging.New(false)
	require.NoError(t, err)
	assert.False(t, l.Desugar().Core().Enabled(zap.InfoLevel))
	assert.True(t, l.Desugar().Core().Enabled(zap.WarnLevel))
}
