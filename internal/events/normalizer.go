package events

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/googlesheets-ru/championship-r7-2025/config"
	"github.com/googlesheets-ru/championship-r7-2025/internal/ingest"
)

// RequiredFields is the schema every source export must carry.
var RequiredFields = []string{
	"brand",
	"category_code",
	"event_time",
	"event_type",
	"price",
	"product_id",
	"user_id",
	"user_session",
}

// ValidationError reports required fields never seen in any inspected record.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("events: required fields missing from source: %s", strings.Join(e.Missing, ", "))
}

// CoercionError reports a price value that failed numeric coercion while
// strict mode was enabled.
type CoercionError struct {
	Row   int
	Value string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("events: record %d: price %q is not a number", e.Row, e.Value)
}

// Normalizer converts raw records into Events.
//
// The required-field check inspects only the presence of field names, not
// their values, over a leading sample of records (SampleRows, default from
// config) — or over every record when FullScan is set. Scanning stops early
// once each required field has been seen at least once.
type Normalizer struct {
	// SampleRows bounds the presence scan; values <= 0 use the default.
	SampleRows int
	// FullScan checks every record instead of the leading sample.
	FullScan bool
	// StrictPrices turns a failed price coercion into a CoercionError
	// instead of the NaN sentinel.
	StrictPrices bool
}

// Normalize validates the record schema and produces one Event per record.
func (n *Normalizer) Normalize(records []ingest.Record) ([]Event, error) {
	if err := n.checkRequiredFields(records); err != nil {
		return nil, err
	}

	out := make([]Event, 0, len(records))
	for i, rec := range records {
		price, ok := parsePrice(rec["price"])
		if !ok && n.StrictPrices {
			return nil, &CoercionError{Row: i + 1, Value: rec["price"]}
		}

		ev := Event{
			Brand:        rec["brand"],
			CategoryCode: rec["category_code"],
			EventTime:    parseEventTime(rec["event_time"]),
			EventType:    strings.TrimSpace(rec["event_type"]),
			Price:        price,
			ProductID:    rec["product_id"],
			UserID:       rec["user_id"],
			UserSession:  rec["user_session"],
		}
		if strings.TrimSpace(ev.Brand) == "" {
			ev.Brand = None
		}
		ev.CategoryLv0, ev.CategoryLv1, ev.CategoryLv2 = categoryLevels(rec["category_code"])
		out = append(out, ev)
	}
	return out, nil
}

func (n *Normalizer) checkRequiredFields(records []ingest.Record) error {
	sample := n.SampleRows
	if sample <= 0 {
		sample = config.DefaultValidationSampleRows
	}
	if n.FullScan || sample > len(records) {
		sample = len(records)
	}

	missing := make(map[string]struct{}, len(RequiredFields))
	for _, f := range RequiredFields {
		missing[f] = struct{}{}
	}
	for i := 0; i < sample && len(missing) > 0; i++ {
		for f := range missing {
			if records[i].Has(f) {
				delete(missing, f)
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}

	names := make([]string, 0, len(missing))
	for f := range missing {
		names = append(names, f)
	}
	sort.Strings(names)
	return &ValidationError{Missing: names}
}

// eventTimeLayouts covers the export variants seen in the wild, most
// specific first. The "UTC" suffix form is what the upstream behavior
// dataset ships.
var eventTimeLayouts = []string{
	"2006-01-02 15:04:05 MST",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseEventTime returns the zero time when no layout matches; such events
// survive normalization and fall to the period filter like any other.
func parseEventTime(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range eventTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// parsePrice strips all whitespace (thousands separators included), turns a
// decimal comma into a point, and parses the rest. A failed parse yields the
// NaN sentinel, which aggregation carries through sums on purpose.
func parsePrice(s string) (float64, bool) {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	clean = strings.ReplaceAll(clean, ",", ".")
	if clean == "" {
		return math.NaN(), false
	}
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return math.NaN(), false
	}
	return f, true
}

// categoryLevels splits a hierarchical category code into its first three
// levels, defaulting each absent segment to None.
func categoryLevels(code string) (lv0, lv1, lv2 string) {
	lv0, lv1, lv2 = None, None, None
	code = strings.TrimSpace(code)
	if code == "" {
		return
	}
	parts := strings.Split(code, ".")
	if len(parts) > 0 && parts[0] != "" {
		lv0 = parts[0]
	}
	if len(parts) > 1 && parts[1] != "" {
		lv1 = parts[1]
	}
	if len(parts) > 2 && parts[2] != "" {
		lv2 = parts[2]
	}
	return
}
