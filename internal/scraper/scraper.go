package scraper

import (
	"context"
	"errors"
)

var (
	// ErrResultsTimeout means the results container never appeared within
	// the configured wait. Recoverable: the run skips to the next keyword.
	ErrResultsTimeout = errors.New("timed out waiting for search results")
)

// ResultsPage is a snapshot of a loaded search results page.
type ResultsPage struct {
	Keyword string
	URL     string
	HTML    string
}

// Session is the browser capability injected into the pipeline. The core
// logic only sees this interface, so it runs against a fake in tests.
type Session interface {
	Search(ctx context.Context, keyword string) (*ResultsPage, error)
	Screenshot(ctx context.Context) ([]byte, error)
	Close() error
}
