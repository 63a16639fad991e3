package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/googlesheets-ru/championship-r7-2025/internal/events"
)

func at(ts time.Time) events.Event {
	return events.Event{EventTime: ts}
}

func TestFilter_InclusiveBounds(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC)
	f := Filter{Start: &start, End: &end}

	require.True(t, f.Include(at(start)), "event exactly at start is included")
	require.True(t, f.Include(at(end)), "event exactly at end is included")
	require.False(t, f.Include(at(start.Add(-time.Nanosecond))))
	require.False(t, f.Include(at(end.Add(time.Nanosecond))))
	require.True(t, f.Include(at(start.Add(15*24*time.Hour))))
}

func TestFilter_OpenBounds(t *testing.T) {
	ts := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

	require.True(t, Filter{}.Include(at(ts)), "empty filter admits all")

	start := ts.Add(time.Hour)
	require.False(t, Filter{Start: &start}.Include(at(ts)))
	require.True(t, Filter{End: &start}.Include(at(ts)))
}

func TestFilter_Apply(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC)
	f := Filter{Start: &start, End: &end}

	in := []events.Event{
		at(start.AddDate(0, 0, 4)),
		at(start.AddDate(0, 5, 0)),
		at(start.AddDate(0, 0, 5)),
	}
	got := f.Apply(in)
	require.Len(t, got, 2)
	require.Equal(t, in[0].EventTime, got[0].EventTime)
	require.Equal(t, in[2].EventTime, got[1].EventTime)
}
