package keywords

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{
			name:     "comments and blanks are skipped",
			content:  "# comment\n\n90916-03100\n",
			expected: []string{"90916-03100"},
		},
		{
			name:     "file order is preserved",
			content:  "B-200\nA-100\nC-300\n",
			expected: []string{"B-200", "A-100", "C-300"},
		},
		{
			name:     "duplicates are kept",
			content:  "90916-03100\n90916-03100\n",
			expected: []string{"90916-03100", "90916-03100"},
		},
		{
			name:     "surrounding whitespace is trimmed",
			content:  "  90916-03100  \n\t17801-21050\n",
			expected: []string{"90916-03100", "17801-21050"},
		},
		{
			name:     "indented comment is still a comment",
			content:  "   # not a keyword\nMD360935\n",
			expected: []string{"MD360935"},
		},
		{
			name:     "only comments and blanks",
			content:  "# a\n\n# b\n",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "Keywords.txt")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			kws, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, kws)
		})
	}
}

func TestLoadMissingFileCreatesTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Keywords.txt")

	kws, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, kws)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "#")

	// The template itself yields zero keywords on the next run too.
	kws, err = Load(path)
	require.NoError(t, err)
	assert.Empty(t, kws)
}

func TestLoadUnreadableDirectory(t *testing.T) {
	// A directory at the keyword path is unreadable for reasons other than
	// absence and must be a hard failure.
	dir := t.TempDir()

	_, err := Load(dir)
	assert.Error(t, err)
}
