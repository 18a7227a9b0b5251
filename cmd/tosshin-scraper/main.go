package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/kenryu621/Tosshin-Scraper/internal/browser"
	"github.com/kenryu621/Tosshin-Scraper/internal/config"
	"github.com/kenryu621/Tosshin-Scraper/internal/keywords"
	"github.com/kenryu621/Tosshin-Scraper/internal/metrics"
	"github.com/kenryu621/Tosshin-Scraper/internal/parser"
	"github.com/kenryu621/Tosshin-Scraper/internal/ratelimit"
	"github.com/kenryu621/Tosshin-Scraper/internal/runner"
	"github.com/kenryu621/Tosshin-Scraper/internal/screenshot"
	"github.com/kenryu621/Tosshin-Scraper/internal/scraper"
	"github.com/kenryu621/Tosshin-Scraper/internal/workbook"
	"github.com/kenryu621/Tosshin-Scraper/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tosshin-scraper: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		keywordsFile = flag.String("keywords", "", "Keyword file path (overrides KEYWORDS_FILE)")
		outputDir    = flag.String("output", "", "Output directory (overrides OUTPUT_DIR)")
		headless     = flag.Bool("headless", true, "Run browser in headless mode")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if *keywordsFile != "" {
		cfg.Paths.KeywordsFile = *keywordsFile
	}
	if *outputDir != "" {
		cfg.Paths.OutputDir = *outputDir
		cfg.Paths.ScreenshotDir = filepath.Join(*outputDir, "screenshots")
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	runID := uuid.NewString()[:8]

	logFile, err := openLogFile(cfg.Paths.LogDir, runID)
	if err != nil {
		return err
	}
	defer logFile.Close()

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format, io.MultiWriter(os.Stderr, logFile))
	log = log.With("run_id", runID)

	start := time.Now()
	log.Info("starting the Tosshin scrape execution")

	kws, err := keywords.Load(cfg.Paths.KeywordsFile)
	if err != nil {
		log.Error("failed to load keywords", "file", cfg.Paths.KeywordsFile, "error", err)
		return err
	}
	if len(kws) == 0 {
		log.Warn("no keywords to process, add entries to the keyword file and rerun",
			"file", cfg.Paths.KeywordsFile)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := browser.New(&browser.Options{
		Headless:       *headless && cfg.Browser.Headless,
		Timeout:        cfg.Browser.Timeout,
		UserAgent:      cfg.Browser.UserAgent,
		ViewportWidth:  cfg.Browser.ViewportWidth,
		ViewportHeight: cfg.Browser.ViewportHeight,
		AcceptLanguage: cfg.Browser.AcceptLanguage,
		TimezoneID:     cfg.Browser.TimezoneID,
		Locale:         cfg.Browser.Locale,
	}, log)
	if err != nil {
		log.Error("failed to initialize browser", "error", err)
		return err
	}
	defer func() {
		log.Info("closing browser")
		if err := b.Close(); err != nil {
			log.Error("failed to close browser", "error", err)
		}
	}()

	session, err := scraper.NewTosshinSession(b, cfg.Site.BaseURL, cfg.Scraper.ResultsTimeout, log)
	if err != nil {
		log.Error("failed to open session", "error", err)
		return err
	}
	defer session.Close()

	shots, err := screenshot.NewCapturer(cfg.Paths.ScreenshotDir, log)
	if err != nil {
		log.Error("failed to prepare screenshot directory", "error", err)
		return err
	}

	sink := workbook.New(log)
	m := metrics.New()

	r := runner.New(runner.Config{
		Session:    session,
		Parser:     parser.NewTosshinParser(),
		Sink:       sink,
		Shots:      shots,
		Limiter:    ratelimit.New(cfg.Scraper.RateLimitMin, cfg.Scraper.RateLimitMax),
		Metrics:    m,
		Logger:     log,
		MaxRetries: cfg.Scraper.MaxRetries,
		RetryDelay: cfg.Scraper.RetryDelay,
	})

	summary, runErr := r.Run(ctx, kws)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("run aborted", "error", runErr)
	}

	// Flush whatever was accumulated, interrupted or not.
	flushErr := sink.Flush(cfg.WorkbookPath())
	if flushErr != nil {
		log.Error("failed to save workbook, scraped rows were lost", "error", flushErr)
	}

	logSummary(log, summary, m, time.Since(start), cfg.WorkbookPath())

	if flushErr != nil {
		return flushErr
	}
	return runErr
}

func openLogFile(dir, runID string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory %q: %w", dir, err)
	}

	name := fmt.Sprintf("run-%s-%s.log", time.Now().Format("20060102-150405"), runID)
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func logSummary(log *slog.Logger, summary *runner.Summary, m *metrics.Metrics, elapsed time.Duration, output string) {
	log.Info("===================================================")
	log.Info("Tosshin scraping completed",
		"keywords", summary.Keywords,
		"records", summary.Records,
		"screenshots", summary.Screenshots,
		"failures", summary.Failures,
		"runtime", elapsed.Round(time.Millisecond),
		"output", output,
	)
	for name, value := range m.Summary() {
		log.Debug("run counter", "name", name, "value", value)
	}
	log.Info("===================================================")
}
