package runtime

import (
	"context"
	"time"

	"github.com/googlesheets-ru/championship-r7-2025/config"
	"golang.org/x/sync/semaphore"
)

// Limits captures the concurrency and ingestion guardrails configured for a
// report run.
type Limits struct {
	// Concurrency caps
	MaxConcurrentReports int
	MaxOpenSources       int

	// Ingestion bounds
	MaxSourceBytes int
	MaxRecords     int

	// Timeouts
	FetchTimeout  time.Duration
	ReportTimeout time.Duration
}

// NewLimits initializes Limits with sensible fallbacks when values are unset.
func NewLimits(maxConcurrentReports, maxOpenSources int) Limits {
	if maxConcurrentReports <= 0 {
		maxConcurrentReports = config.DefaultMaxConcurrentReports
	}
	if maxOpenSources <= 0 {
		maxOpenSources = config.DefaultMaxOpenSources
	}

	return Limits{
		MaxConcurrentReports: maxConcurrentReports,
		MaxOpenSources:       maxOpenSources,
		MaxSourceBytes:       config.DefaultMaxSourceBytes,
		MaxRecords:           config.DefaultMaxRecords,
		FetchTimeout:         config.DefaultFetchTimeout,
		ReportTimeout:        config.DefaultReportTimeout,
	}
}

// Controller coordinates runtime semaphores for report and source guardrails.
// Each report run is single-threaded internally; the controller only bounds
// how many runs and open sources exist at once.
type Controller struct {
	limits          Limits
	reportSemaphore *semaphore.Weighted
	sourceSemaphore *semaphore.Weighted
}

// NewController constructs a Controller backed by weighted semaphores.
func NewController(limits Limits) *Controller {
	return &Controller{
		limits:          limits,
		reportSemaphore: semaphore.NewWeighted(int64(limits.MaxConcurrentReports)),
		sourceSemaphore: semaphore.NewWeighted(int64(limits.MaxOpenSources)),
	}
}

// AcquireReport reserves capacity for one report run.
func (c *Controller) AcquireReport(ctx context.Context) error {
	return c.reportSemaphore.Acquire(ctx, 1)
}

// ReleaseReport frees previously-acquired report capacity.
func (c *Controller) ReleaseReport() {
	c.reportSemaphore.Release(1)
}

// AcquireSource reserves an open source slot (file read or HTTP body).
func (c *Controller) AcquireSource(ctx context.Context) error {
	return c.sourceSemaphore.Acquire(ctx, 1)
}

// ReleaseSource frees an open source slot.
func (c *Controller) ReleaseSource() {
	c.sourceSemaphore.Release(1)
}

// LimitsSnapshot exposes the configured guardrails for logging and discovery.
func (c *Controller) LimitsSnapshot() Limits {
	return c.limits
}
