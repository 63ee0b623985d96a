package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assistant.log")
	l, err := New(Config{Level: "info", File: path})
	require.NoError(t, err)

	l.Named("test").Info("analysis finished", zap.Int("model_count", 3))
	l.Debug("hidden")
	l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.Contains(out, `"msg":"analysis finished"`), out)
	assert.True(t, strings.Contains(out, `"model_count":3`), out)
	assert.False(t, strings.Contains(out, "hidden"))
}
