// Package events validates raw records and normalizes them into typed
// e-commerce events.
package events

import "time"

// None substitutes for an absent brand or category segment so that group
// keys stay non-empty throughout aggregation and ranking.
const None = "_none"

// Event types carried by the source export.
const (
	TypeView     = "view"
	TypeCart     = "cart"
	TypePurchase = "purchase"
)

// Event is a normalized source record. Price is NaN when the raw value did
// not parse as a number (see Normalizer.StrictPrices). CategoryLv0..2 hold
// the first three dot-separated segments of CategoryCode, each defaulting
// to None.
type Event struct {
	Brand        string
	CategoryCode string
	CategoryLv0  string
	CategoryLv1  string
	CategoryLv2  string
	EventTime    time.Time
	EventType    string
	Price        float64
	ProductID    string
	UserID       string
	UserSession  string
}
