package logs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	log, err := New(WithLevel("warn"), WithName("shortlinks"))
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zap.InfoLevel))
	assert.True(t, log.Core().Enabled(zap.WarnLevel))

	_, err = New(WithLevel("loud"))
	require.Error(t, err)
}

func TestNew_DefaultLevel(t *testing.T) {
	t.Setenv("GIN_RELEASE", "")
	log, err := New(WithLevel(""))
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zap.DebugLevel))

	t.Setenv("GIN_RELEASE", "release")
	log, err = New()
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zap.DebugLevel))
	assert.True(t, log.Core().Enabled(zap.InfoLevel))
}

func TestMustNew_PanicsOnBadLevel(t *testing.T) {
	assert.Panics(t, func() { MustNew(WithLevel("loud")) })
}
