// Package period restricts events to an inclusive time window.
package period

import (
	"time"

	"github.com/googlesheets-ru/championship-r7-2025/internal/events"
)

// Filter is an inclusive [Start, End] window. A nil bound imposes no
// constraint on that side; the zero Filter admits every event.
type Filter struct {
	Start *time.Time
	End   *time.Time
}

// Include reports whether the event's time falls inside the window.
func (f Filter) Include(ev events.Event) bool {
	if f.Start != nil && ev.EventTime.Before(*f.Start) {
		return false
	}
	if f.End != nil && ev.EventTime.After(*f.End) {
		return false
	}
	return true
}

// Apply returns the events admitted by the filter, preserving order.
func (f Filter) Apply(evts []events.Event) []events.Event {
	if f.Start == nil && f.End == nil {
		return evts
	}
	out := make([]events.Event, 0, len(evts))
	for _, ev := range evts {
		if f.Include(ev) {
			out = append(out, ev)
		}
	}
	return out
}
