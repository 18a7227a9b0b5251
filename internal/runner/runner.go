package runner

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/kenryu621/Tosshin-Scraper/internal/metrics"
	"github.com/kenryu621/Tosshin-Scraper/internal/models"
	"github.com/kenryu621/Tosshin-Scraper/internal/parser"
	"github.com/kenryu621/Tosshin-Scraper/internal/ratelimit"
	"github.com/kenryu621/Tosshin-Scraper/internal/scraper"
)

// Sink accumulates extracted records for the final spreadsheet.
type Sink interface {
	Append(records ...models.PartRecord)
	Len() int
}

// Capturer persists one screenshot artifact per call.
type Capturer interface {
	Capture(keyword string, png []byte) (string, error)
}

type Config struct {
	Session    scraper.Session
	Parser     *parser.TosshinParser
	Sink       Sink
	Shots      Capturer
	Limiter    *ratelimit.Limiter
	Metrics    *metrics.Metrics
	Logger     *slog.Logger
	MaxRetries int
	RetryDelay time.Duration
}

// Runner drives the keyword loop: search, screenshot, extract, accumulate.
// Per-keyword failures are logged and absorbed; only cancellation stops the
// loop early.
type Runner struct {
	session    scraper.Session
	parser     *parser.TosshinParser
	sink       Sink
	shots      Capturer
	limiter    *ratelimit.Limiter
	metrics    *metrics.Metrics
	logger     *slog.Logger
	maxRetries int
	retryDelay time.Duration
}

type Summary struct {
	Keywords    int
	Records     int
	Screenshots int
	Failures    int
	Elapsed     time.Duration
}

func New(cfg Config) *Runner {
	return &Runner{
		session:    cfg.Session,
		parser:     cfg.Parser,
		sink:       cfg.Sink,
		shots:      cfg.Shots,
		limiter:    cfg.Limiter,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger.With("component", "runner"),
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}
}

// Run processes keywords in order, duplicates included. It returns the run
// summary along with ctx.Err when the run was interrupted; everything
// accumulated so far stays in the sink either way.
func (r *Runner) Run(ctx context.Context, keywords []string) (*Summary, error) {
	start := time.Now()
	summary := &Summary{}

	if len(keywords) == 0 {
		r.logger.Warn("no keywords to process")
		summary.Elapsed = time.Since(start)
		return summary, nil
	}

	r.logger.Info("starting keyword loop", "keywords", len(keywords))

	for _, keyword := range keywords {
		if err := r.limiter.Wait(ctx); err != nil {
			summary.Elapsed = time.Since(start)
			return summary, err
		}

		r.processKeyword(ctx, keyword, summary)
		summary.Keywords++
		r.metrics.IncKeyword()

		if err := ctx.Err(); err != nil {
			r.logger.Warn("run interrupted", "processed", summary.Keywords)
			summary.Elapsed = time.Since(start)
			return summary, err
		}
	}

	summary.Elapsed = time.Since(start)
	return summary, nil
}

func (r *Runner) processKeyword(ctx context.Context, keyword string, summary *Summary) {
	log := r.logger.With("keyword", keyword)
	log.Info("fetching data for search keyword")

	page, err := r.search(ctx, keyword)
	if err != nil {
		log.Error("search failed, skipping keyword", "error", err)
		summary.Failures++
		r.metrics.IncFailure("search")
		return
	}

	// A screenshot of "no results" is still useful evidence, so capture
	// before looking at the extraction outcome.
	r.captureScreenshot(ctx, keyword, summary)

	result, err := r.parser.Extract(page)
	if err != nil {
		log.Error("extraction failed, skipping keyword", "error", err)
		summary.Failures++
		r.metrics.IncFailure("extract")
		return
	}

	if result.Empty || len(result.Records) == 0 {
		log.Warn("no results found for keyword")
		return
	}

	r.sink.Append(result.Records...)
	summary.Records += len(result.Records)
	r.metrics.AddRecords(len(result.Records))
	log.Info("records extracted", "count", len(result.Records))
}

// search retries transient results timeouts up to MaxRetries extra
// attempts. Other failures are not retried.
func (r *Runner) search(ctx context.Context, keyword string) (*scraper.ResultsPage, error) {
	var lastErr error

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			r.logger.Info("retrying search", "keyword", keyword, "attempt", attempt+1)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(r.retryDelay):
			}
		}

		page, err := r.session.Search(ctx, keyword)
		if err == nil {
			return page, nil
		}

		lastErr = err
		if !errors.Is(err, scraper.ErrResultsTimeout) {
			break
		}
	}

	return nil, lastErr
}

func (r *Runner) captureScreenshot(ctx context.Context, keyword string, summary *Summary) {
	png, err := r.session.Screenshot(ctx)
	if err != nil {
		r.logger.Warn("screenshot failed, continuing", "keyword", keyword, "error", err)
		r.metrics.IncFailure("screenshot")
		return
	}

	path, err := r.shots.Capture(keyword, png)
	if err != nil {
		r.logger.Warn("screenshot write failed, continuing", "keyword", keyword, "error", err)
		r.metrics.IncFailure("screenshot")
		return
	}

	summary.Screenshots++
	r.metrics.IncScreenshot()
	r.logger.Debug("screenshot captured", "keyword", keyword, "file", path)
}
