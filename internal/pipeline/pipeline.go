// Package pipeline wires parsing, normalization, filtering, aggregation,
// ranking, and assembly into one report run.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/googlesheets-ru/championship-r7-2025/internal/aggregate"
	"github.com/googlesheets-ru/championship-r7-2025/internal/events"
	"github.com/googlesheets-ru/championship-r7-2025/internal/ingest"
	"github.com/googlesheets-ru/championship-r7-2025/internal/period"
	"github.com/googlesheets-ru/championship-r7-2025/internal/ranking"
	"github.com/googlesheets-ru/championship-r7-2025/internal/report"
	"github.com/googlesheets-ru/championship-r7-2025/internal/runtime"
	"github.com/googlesheets-ru/championship-r7-2025/pkg/errcat"
	"github.com/googlesheets-ru/championship-r7-2025/pkg/validation"
)

// Options configures one report run.
type Options struct {
	Title     string `validate:"required"`
	Delimiter string `validate:"omitempty,delimiter"`

	// Inclusive period bounds. A calendar date in From starts at midnight
	// UTC; in To it covers the whole day. RFC3339 values are taken as-is.
	From string `validate:"omitempty,datestr"`
	To   string `validate:"omitempty,datestr"`

	// Schema-check and coercion modes (sampled NaN-tolerant behavior is
	// the default; see internal/events).
	ValidationSampleRows int `validate:"omitempty,min=1"`
	FullScanValidation   bool
	StrictPrices         bool
}

// Pipeline executes report runs. Each run is synchronous and single-threaded;
// the controller only bounds how many runs are in flight at once.
type Pipeline struct {
	limits runtime.Limits
	ctrl   *runtime.Controller
	ranker *ranking.Engine
}

// New constructs a Pipeline. ctrl may be nil, in which case runs are not
// capacity-gated (tests, one-shot library use).
func New(limits runtime.Limits, ctrl *runtime.Controller) *Pipeline {
	return &Pipeline{limits: limits, ctrl: ctrl, ranker: ranking.NewEngine()}
}

// Run turns raw source bytes into an assembled report.
func (p *Pipeline) Run(ctx context.Context, source []byte, opts Options) (report.Report, error) {
	if err := validation.ValidateStruct(opts); err != nil {
		return report.Report{}, err
	}
	if p.ctrl != nil {
		if err := p.ctrl.AcquireReport(ctx); err != nil {
			return report.Report{}, errcat.Wrap(errcat.Timeout, "waiting for a report slot", err)
		}
		defer p.ctrl.ReleaseReport()
	}

	jobID := uuid.NewString()
	logger := zerolog.Ctx(ctx).With().Str("job_id", jobID).Str("title", opts.Title).Logger()
	started := time.Now()

	doc, err := ingest.Parse(string(source), opts.Delimiter)
	if err != nil {
		return report.Report{}, errcat.Wrap(errcat.Parse, "parsing source", err)
	}
	if max := p.limits.MaxRecords; max > 0 && len(doc.Records) > max {
		return report.Report{}, errcat.Wrapf(errcat.LimitExceeded, "source has %d records, limit is %d", len(doc.Records), max)
	}

	normalizer := &events.Normalizer{
		SampleRows:   opts.ValidationSampleRows,
		FullScan:     opts.FullScanValidation,
		StrictPrices: opts.StrictPrices,
	}
	evts, err := normalizer.Normalize(doc.Records)
	if err != nil {
		return report.Report{}, errcat.Wrap(errcat.Validation, "normalizing records", err)
	}

	filter, err := parsePeriod(opts.From, opts.To)
	if err != nil {
		return report.Report{}, err
	}
	kept := filter.Apply(evts)

	res := aggregate.Aggregate(kept)
	rep := report.Assemble(jobID, opts.Title, res, p.ranker)

	logger.Info().
		Int("records", len(doc.Records)).
		Int("events_in_period", len(kept)).
		Int("categories", len(res.Categories)).
		Int("brands", len(res.Brands)).
		Dur("elapsed", time.Since(started)).
		Msg("report assembled")
	return rep, nil
}

const dateOnly = "2006-01-02"

// parsePeriod builds the inclusive filter from the option strings. Values
// were already shape-checked by the datestr rule.
func parsePeriod(from, to string) (period.Filter, error) {
	var f period.Filter
	if from != "" {
		t, err := parseBound(from)
		if err != nil {
			return f, err
		}
		f.Start = &t
	}
	if to != "" {
		t, err := parseBound(to)
		if err != nil {
			return f, err
		}
		// A bare date as an upper bound includes the whole day.
		if len(to) == len(dateOnly) {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		f.End = &t
	}
	return f, nil
}

func parseBound(s string) (time.Time, error) {
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errcat.Wrapf(errcat.Validation, "period bound %q must be YYYY-MM-DD or RFC3339", s)
	}
	return t, nil
}
