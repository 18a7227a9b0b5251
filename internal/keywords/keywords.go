package keywords

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

const template = `# Tosshin scraper keyword list.
# One part number or search term per line.
# Lines starting with '#' and blank lines are ignored.
`

// Load reads the keyword file and returns the trimmed, non-comment lines in
// file order, duplicates included. A missing file is not an error: a
// commented template is written in its place and zero keywords are returned
// so the caller can exit cleanly.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		if werr := os.WriteFile(path, []byte(template), 0644); werr != nil {
			return nil, fmt.Errorf("create keyword template %q: %w", path, werr)
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open keyword file %q: %w", path, err)
	}
	defer f.Close()

	var kws []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		kws = append(kws, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read keyword file %q: %w", path, err)
	}

	return kws, nil
}
