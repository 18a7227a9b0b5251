package screenshot

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCaptureWritesFile(t *testing.T) {
	dir := t.TempDir()
	c, err := NewCapturer(dir, discardLogger())
	require.NoError(t, err)

	path, err := c.Capture("90916-03100", []byte("png-bytes"))
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.Contains(t, filepath.Base(path), "90916-03100")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestCaptureAvoidsCollisions(t *testing.T) {
	c, err := NewCapturer(t.TempDir(), discardLogger())
	require.NoError(t, err)

	first, err := c.Capture("90916-03100", []byte("a"))
	require.NoError(t, err)
	second, err := c.Capture("90916-03100", []byte("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	dataFirst, err := os.ReadFile(first)
	require.NoError(t, err)
	dataSecond, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), dataFirst)
	assert.Equal(t, []byte("b"), dataSecond)
}

func TestNewCapturerCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output", "screenshots")

	_, err := NewCapturer(dir, discardLogger())
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSanitizeKeyword(t *testing.T) {
	tests := []struct {
		name     string
		keyword  string
		expected string
	}{
		{name: "plain part number", keyword: "90916-03100", expected: "90916-03100"},
		{name: "slashes replaced", keyword: "a/b\\c", expected: "a-b-c"},
		{name: "spaces replaced", keyword: "oil filter", expected: "oil-filter"},
		{name: "unicode replaced", keyword: "フィルター", expected: "keyword"},
		{name: "empty falls back", keyword: "   ", expected: "keyword"},
		{name: "long keyword truncated", keyword: strings.Repeat("x", 200), expected: strings.Repeat("x", 80)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeKeyword(tt.keyword))
		})
	}
}
