package aggregate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/googlesheets-ru/championship-r7-2025/internal/events"
)

func purchase(brand, lv0 string, price float64) events.Event {
	return events.Event{Brand: brand, CategoryLv0: lv0, EventType: events.TypePurchase, Price: price}
}

func TestAggregate_PurchaseStats(t *testing.T) {
	res := Aggregate([]events.Event{
		purchase("Acme", "electronics", 100),
		purchase("Acme", "electronics", 200),
		purchase("Zeta", "books", 30),
	})

	require.Equal(t, GroupStats{Count: 2, TotalPrice: 300, AvgPrice: 150}, res.Categories["electronics"])
	require.Equal(t, GroupStats{Count: 1, TotalPrice: 30, AvgPrice: 30}, res.Categories["books"])
	require.Equal(t, GroupStats{Count: 2, TotalPrice: 300, AvgPrice: 150}, res.Brands["Acme"])
	require.Equal(t, GroupStats{Count: 1, TotalPrice: 30, AvgPrice: 30}, res.Brands["Zeta"])
}

func TestObserve_AverageConsistentAfterEveryUpdate(t *testing.T) {
	eng := NewEngine()
	prices := []float64{10, 35, 99.9, 0.5}

	var total float64
	for i, p := range prices {
		eng.Observe(purchase("Acme", "electronics", p))
		total += p

		stats := eng.Result().Brands["Acme"]
		require.Equal(t, i+1, stats.Count)
		require.InDelta(t, total, stats.TotalPrice, 1e-9)
		require.InDelta(t, total/float64(i+1), stats.AvgPrice, 1e-9,
			"average must equal total/count after update %d", i+1)
	}
}

func TestObserve_NonPurchaseCreatesZeroEntry(t *testing.T) {
	eng := NewEngine()
	eng.Observe(events.Event{Brand: "Acme", CategoryLv0: "books", EventType: events.TypeView, Price: 9.99})
	eng.Observe(events.Event{Brand: "Zeta", CategoryLv0: "books", EventType: events.TypeCart, Price: 5})

	res := eng.Result()
	require.Contains(t, res.Categories, "books")
	require.Equal(t, GroupStats{}, res.Categories["books"])
	require.Equal(t, GroupStats{}, res.Brands["Acme"])
	require.Equal(t, GroupStats{}, res.Brands["Zeta"])
}

func TestObserve_NaNPricePoisonsGroup(t *testing.T) {
	eng := NewEngine()
	eng.Observe(purchase("Acme", "electronics", 100))
	eng.Observe(purchase("Acme", "electronics", math.NaN()))
	eng.Observe(purchase("Acme", "electronics", 50))

	stats := eng.Result().Brands["Acme"]
	require.Equal(t, 3, stats.Count, "count keeps moving")
	require.True(t, math.IsNaN(stats.TotalPrice))
	require.True(t, math.IsNaN(stats.AvgPrice))

	// Other groups stay unaffected.
	eng.Observe(purchase("Zeta", "books", 30))
	require.Equal(t, GroupStats{Count: 1, TotalPrice: 30, AvgPrice: 30}, eng.Result().Brands["Zeta"])
}

func TestAggregate_Empty(t *testing.T) {
	res := Aggregate(nil)
	require.Empty(t, res.Categories)
	require.Empty(t, res.Brands)
}
