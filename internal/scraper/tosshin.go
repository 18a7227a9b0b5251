package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/kenryu621/Tosshin-Scraper/internal/browser"
	"github.com/playwright-community/playwright-go"
)

// resultsSelector wraps both the results table and the "nothing found"
// message, so waiting on it covers empty searches too.
const resultsSelector = "div.parts-search__result"

// TosshinSession drives one page of the shared browser against the Tosshin
// parts search. One session serves the whole run.
type TosshinSession struct {
	browser *browser.Browser
	page    playwright.Page
	baseURL string
	timeout time.Duration
	logger  *slog.Logger
}

func NewTosshinSession(b *browser.Browser, baseURL string, resultsTimeout time.Duration, logger *slog.Logger) (*TosshinSession, error) {
	page, err := b.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to open session page: %w", err)
	}

	return &TosshinSession{
		browser: b,
		page:    page,
		baseURL: baseURL,
		timeout: resultsTimeout,
		logger:  logger.With("component", "session"),
	}, nil
}

// SearchURL builds the parts-search address for a keyword.
func SearchURL(baseURL, keyword string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	q := u.Query()
	q.Set("keyword", keyword)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func (s *TosshinSession) Search(ctx context.Context, keyword string) (*ResultsPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target, err := SearchURL(s.baseURL, keyword)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("fetching results page", "keyword", keyword, "url", target)

	if err := s.browser.Navigate(s.page, target); err != nil {
		return nil, err
	}

	if _, err := s.page.WaitForSelector(resultsSelector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(float64(s.timeout.Milliseconds())),
	}); err != nil {
		return nil, fmt.Errorf("keyword %q: %w", keyword, ErrResultsTimeout)
	}

	html, err := s.page.Content()
	if err != nil {
		return nil, fmt.Errorf("failed to read page content: %w", err)
	}

	return &ResultsPage{
		Keyword: keyword,
		URL:     target,
		HTML:    html,
	}, nil
}

func (s *TosshinSession) Screenshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	png, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to take screenshot: %w", err)
	}

	return png, nil
}

func (s *TosshinSession) Close() error {
	if s.page == nil {
		return nil
	}
	return s.page.Close()
}
