package screenshot

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Capturer writes screenshot artifacts under one directory, named by
// sanitized keyword plus timestamp and a counter so repeated keywords never
// overwrite each other.
type Capturer struct {
	dir     string
	logger  *slog.Logger
	counter int
	now     func() time.Time
}

func NewCapturer(dir string, logger *slog.Logger) (*Capturer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create screenshot directory %q: %w", dir, err)
	}

	return &Capturer{
		dir:    dir,
		logger: logger.With("component", "screenshot"),
		now:    time.Now,
	}, nil
}

// Capture saves png to a new file keyed by keyword and returns its path.
func (c *Capturer) Capture(keyword string, png []byte) (string, error) {
	c.counter++
	name := fmt.Sprintf("%s_%s_%03d.png", sanitizeKeyword(keyword), c.now().Format("20060102-150405"), c.counter)
	path := filepath.Join(c.dir, name)

	if err := os.WriteFile(path, png, 0644); err != nil {
		return "", fmt.Errorf("write screenshot %q: %w", path, err)
	}

	c.logger.Debug("screenshot saved", "keyword", keyword, "file", path)
	return path, nil
}

func sanitizeKeyword(keyword string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '-'
		}
	}, strings.TrimSpace(keyword))

	cleaned = strings.Trim(cleaned, "-.")
	if len(cleaned) > 80 {
		cleaned = cleaned[:80]
	}
	if cleaned == "" {
		cleaned = "keyword"
	}
	return cleaned
}
