package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/googlesheets-ru/championship-r7-2025/config"
	"github.com/googlesheets-ru/championship-r7-2025/internal/fetch"
	"github.com/googlesheets-ru/championship-r7-2025/internal/pipeline"
	"github.com/googlesheets-ru/championship-r7-2025/internal/render"
	"github.com/googlesheets-ru/championship-r7-2025/internal/runtime"
	"github.com/googlesheets-ru/championship-r7-2025/internal/security"
	"github.com/googlesheets-ru/championship-r7-2025/pkg/errcat"
	"github.com/googlesheets-ru/championship-r7-2025/pkg/version"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	var (
		input        string
		out          string
		title        string
		delimiter    string
		from, to     string
		strictPrices bool
		fullScan     bool
		timeout      time.Duration
	)

	flag.StringVar(&input, "input", "", "Source file paths or http(s) URLs, comma-separated")
	flag.StringVar(&out, "out", "report.xlsx", "Output workbook path")
	flag.StringVar(&title, "title", "E-commerce report", "Report title")
	flag.StringVar(&delimiter, "delimiter", config.DefaultDelimiter, "Source field delimiter")
	flag.StringVar(&from, "from", "", "Inclusive period start (YYYY-MM-DD or RFC3339)")
	flag.StringVar(&to, "to", "", "Inclusive period end (YYYY-MM-DD or RFC3339)")
	flag.BoolVar(&strictPrices, "strict-prices", false, "Fail on malformed price values instead of carrying NaN")
	flag.BoolVar(&fullScan, "full-scan", false, "Check required fields on every record, not just the leading sample")
	flag.DurationVar(&timeout, "timeout", config.DefaultReportTimeout, "Per-report timeout")
	flag.Parse()

	// Load .env settings before anything reads the environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "error loading .env: %v\n", err)
	}

	logger := zlog.With().Str("service", "ecomreport").Logger()
	ctx := logger.WithContext(context.Background())

	if input == "" {
		fmt.Fprintln(os.Stderr, "no input selected; use -input with a file path or URL")
		os.Exit(2)
	}

	// Local reads honor the allow-list only when the operator configured
	// one; URL-only runs need no filesystem policy.
	var secMgr *security.Manager
	if os.Getenv(security.EnvAllowedDirs) != "" {
		var err error
		secMgr, err = security.NewManagerFromEnv()
		if err != nil {
			logger.Error().Err(err).Msg("security: failed to initialize allow-list from env")
			os.Exit(1)
		}
		logger.Info().Strs("allowed_dirs", secMgr.AllowedDirectories()).Msg("security allow-list configured")
	}

	limits := runtime.NewLimits(0, 0)
	limits.ReportTimeout = timeout
	controller := runtime.NewController(limits)
	fetcher := fetch.NewFetcher(secMgr, controller)
	pipe := pipeline.New(limits, controller)

	inputs := splitInputs(input)
	logger.Info().
		Str("version", version.Version()).
		Int("inputs", len(inputs)).
		Int("max_concurrent_reports", limits.MaxConcurrentReports).
		Str("delimiter", delimiter).
		Msg("report run configured")

	opts := pipeline.Options{
		Title:              title,
		Delimiter:          delimiter,
		From:               from,
		To:                 to,
		FullScanValidation: fullScan,
		StrictPrices:       strictPrices,
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range inputs {
		g.Go(func() error {
			runCtx, cancel := context.WithTimeout(gctx, limits.ReportTimeout)
			defer cancel()

			data, err := fetcher.Fetch(runCtx, src)
			if err != nil {
				return fmt.Errorf("%s: %w", src, err)
			}
			rep, err := pipe.Run(runCtx, data, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", src, err)
			}

			dest := outputPath(out, i, len(inputs))
			if err := render.WriteFile(rep, dest); err != nil {
				return fmt.Errorf("%s: %w", src, err)
			}
			logger.Info().Str("source", src).Str("output", dest).Str("job_id", rep.ID).Msg("report written")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Bool("retryable", errcat.Retryable(err)).Msg("report run failed")
		os.Exit(1)
	}
}

func splitInputs(input string) []string {
	parts := strings.Split(input, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// outputPath suffixes the output name when one run covers several sources:
// report.xlsx -> report_1.xlsx, report_2.xlsx, ...
func outputPath(out string, idx, total int) string {
	if total <= 1 {
		return out
	}
	ext := filepath.Ext(out)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(out, ext), idx+1, ext)
}
