package config

import "time"

// Default guardrails and report shape for the e-commerce report pipeline.
// These values are conservative and can be overridden per run through
// pipeline.Options or the environment settings read by cmd/ecomreport.

const (
	// Source ingestion
	DefaultDelimiter      = ";"
	DefaultMaxSourceBytes = 64 * 1024 * 1024 // 64MB
	DefaultMaxRecords     = 1_000_000

	// Schema validation: how many leading records are sampled for the
	// required-field presence check. Sampling trades completeness for
	// speed; pipeline.Options.FullScanValidation scans every record.
	DefaultValidationSampleRows = 3

	// Report shape
	DefaultTopSize   = 3
	DefaultTableSize = 15

	// Concurrency
	DefaultMaxConcurrentReports = 4
	DefaultMaxOpenSources       = 4
)

const (
	// Timeouts
	DefaultFetchTimeout  = 30 * time.Second
	DefaultReportTimeout = 2 * time.Minute
)
