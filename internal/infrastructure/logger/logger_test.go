package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	l, err := New("debug", "console")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = New(" WARN ", "json")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	_, err = New("loud", "json")
	assert.Error(t, err)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
}

func TestSanitize(t *testing.T) {
	tests := map[string]string{
		"":                          "",
		"/us/movie/inception":       "/us/movie/inception",
		"/us/movie\r\nFAKE entry":   "/us/movieFAKE entry",
		"tab\there":                 "tabhere",
		"bell\x07null\x00":          "bellnull",
		"c1\u0085control":           "c1control",
		"unicode stays: Amélie ✓":   "unicode stays: Amélie ✓",
	}

	for input, want := range tests {
		assert.Equal(t, want, Sanitize(input), "input %q", input)
	}
}
