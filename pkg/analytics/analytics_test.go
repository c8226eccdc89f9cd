package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func settledRecords(profits ...float64) []Record {
	records := make([]Record, 0, len(profits))
	base := day("2024-01-01")
	for i, p := range profits {
		records = append(records, Record{
			TradeDate: base.AddDate(0, 0, i),
			NetProfit: fptr(p),
		})
	}
	return records
}

func TestAggregate_Empty(t *testing.T) {
	stats := Aggregate(nil)

	assert.Zero(t, stats.TotalProfit)
	assert.Zero(t, stats.WinRate)
	assert.Zero(t, stats.AverageProfit)
	assert.Zero(t, stats.TradeCount)
}

func TestAggregate_TotalsAndWinRate(t *testing.T) {
	records := settledRecords(100, -50, 200, -30)

	stats := Aggregate(records)

	assert.InDelta(t, 220.0, stats.TotalProfit, 1e-9)
	assert.InDelta(t, 50.0, stats.WinRate, 1e-9)
	assert.InDelta(t, 55.0, stats.AverageProfit, 1e-9)
	assert.Equal(t, 4, stats.TradeCount)
}

func TestAggregate_WinRateBounds(t *testing.T) {
	allWins := Aggregate(settledRecords(10, 20, 30))
	assert.InDelta(t, 100.0, allWins.WinRate, 1e-9)

	allLosses := Aggregate(settledRecords(-10, -20))
	assert.Zero(t, allLosses.WinRate)
}

func TestAggregate_UnsettledCountsAsZero(t *testing.T) {
	records := []Record{
		{TradeDate: day("2024-01-01"), NetProfit: fptr(100)},
		{TradeDate: day("2024-01-02"), NetProfit: nil},
	}

	stats := Aggregate(records)

	assert.InDelta(t, 100.0, stats.TotalProfit, 1e-9)
	assert.InDelta(t, 50.0, stats.WinRate, 1e-9)
}

func TestMonthlyBuckets_Grouping(t *testing.T) {
	records := []Record{
		{TradeDate: day("2024-01-05"), NetProfit: fptr(100)},
		{TradeDate: day("2024-01-20"), NetProfit: fptr(-40)},
		{TradeDate: day("2024-02-01"), NetProfit: fptr(50)},
	}

	buckets := MonthlyBuckets(records)

	require.Len(t, buckets, 2)

	assert.Equal(t, "2024-01", buckets[0].Month)
	assert.InDelta(t, 60.0, buckets[0].ProfitSum, 1e-9)
	assert.Equal(t, 2, buckets[0].TradeCount)
	assert.Equal(t, 1, buckets[0].WinCount)
	assert.InDelta(t, 50.0, buckets[0].WinRatePercent(), 1e-9)

	assert.Equal(t, "2024-02", buckets[1].Month)
	assert.InDelta(t, 50.0, buckets[1].ProfitSum, 1e-9)
	assert.Equal(t, 1, buckets[1].TradeCount)
	assert.Equal(t, 1, buckets[1].WinCount)
}

func TestMonthlyBuckets_AscendingAcrossYears(t *testing.T) {
	records := []Record{
		{TradeDate: day("2024-02-10"), NetProfit: fptr(1)},
		{TradeDate: day("2023-12-31"), NetProfit: fptr(1)},
		{TradeDate: day("2024-01-01"), NetProfit: fptr(1)},
	}

	buckets := MonthlyBuckets(records)

	require.Len(t, buckets, 3)
	assert.Equal(t, "2023-12", buckets[0].Month)
	assert.Equal(t, "2024-01", buckets[1].Month)
	assert.Equal(t, "2024-02", buckets[2].Month)
}

func TestBuildCumulativeSeries_Empty(t *testing.T) {
	series := BuildCumulativeSeries(nil)

	assert.Empty(t, series.Spots)
	assert.Zero(t, series.Min)
	assert.Zero(t, series.Max)
}

func TestBuildCumulativeSeries_RunningTotal(t *testing.T) {
	records := settledRecords(100, -50, 200, -30)

	series := BuildCumulativeSeries(records)

	require.Len(t, series.Spots, 4)
	expected := []float64{100, 50, 250, 220}
	for i, spot := range series.Spots {
		assert.Equal(t, i, spot.Index)
		assert.InDelta(t, expected[i], spot.CumulativeProfit, 1e-9)
	}
	assert.InDelta(t, 50.0, series.Min, 1e-9)
	assert.InDelta(t, 250.0, series.Max, 1e-9)
}

func TestBuildCumulativeSeries_FinalSpotMatchesAggregate(t *testing.T) {
	records := settledRecords(12.5, -7.25, 3, 40, -20)

	series := BuildCumulativeSeries(records)
	stats := Aggregate(records)

	require.NotEmpty(t, series.Spots)
	last := series.Spots[len(series.Spots)-1]
	assert.InDelta(t, stats.TotalProfit, last.CumulativeProfit, 1e-9)
}

func TestBuildCumulativeSeries_SortsByDateWithoutMutatingInput(t *testing.T) {
	records := []Record{
		{TradeDate: day("2024-03-01"), NetProfit: fptr(30)},
		{TradeDate: day("2024-01-01"), NetProfit: fptr(10)},
		{TradeDate: day("2024-02-01"), NetProfit: fptr(-5)},
	}

	series := BuildCumulativeSeries(records)

	// cumulative walk follows date order: 10, 5, 35
	require.Len(t, series.Spots, 3)
	assert.InDelta(t, 10.0, series.Spots[0].CumulativeProfit, 1e-9)
	assert.InDelta(t, 5.0, series.Spots[1].CumulativeProfit, 1e-9)
	assert.InDelta(t, 35.0, series.Spots[2].CumulativeProfit, 1e-9)

	// caller's slice untouched
	assert.Equal(t, day("2024-03-01"), records[0].TradeDate)
	assert.Equal(t, day("2024-01-01"), records[1].TradeDate)
}

func TestBuildCumulativeSeries_StableOnEqualDates(t *testing.T) {
	same := day("2024-05-05")
	records := []Record{
		{TradeDate: same, NetProfit: fptr(100)},
		{TradeDate: same, NetProfit: fptr(-40)},
	}

	series := BuildCumulativeSeries(records)

	require.Len(t, series.Spots, 2)
	assert.InDelta(t, 100.0, series.Spots[0].CumulativeProfit, 1e-9)
	assert.InDelta(t, 60.0, series.Spots[1].CumulativeProfit, 1e-9)
}

func TestRisk_DrawdownScenario(t *testing.T) {
	records := settledRecords(100, -50, 200, -30)

	metrics := Risk(records)

	// peaks: 100, 100, 250, 250 -> drawdowns: 0, 50, 0, 30
	assert.InDelta(t, 50.0, metrics.MaxDrawdown, 1e-9)
	assert.InDelta(t, 3.75, metrics.ProfitFactor, 1e-9) // 300 / 80
	assert.InDelta(t, 200.0, metrics.MaxProfit, 1e-9)
	assert.InDelta(t, -50.0, metrics.MaxLoss, 1e-9)
}

func TestRisk_NonDecreasingCumulative(t *testing.T) {
	metrics := Risk(settledRecords(10, 20, 0, 5))

	assert.Zero(t, metrics.MaxDrawdown)
	assert.Zero(t, metrics.ProfitFactor) // no losing trades
	assert.Zero(t, metrics.MaxLoss)
}

func TestRisk_Empty(t *testing.T) {
	metrics := Risk(nil)

	assert.Zero(t, metrics.MaxDrawdown)
	assert.Zero(t, metrics.ProfitFactor)
	assert.Zero(t, metrics.MaxProfit)
	assert.Zero(t, metrics.MaxLoss)
}

func TestRisk_InputOrderMatters(t *testing.T) {
	// drawdown follows the caller-supplied order, not date order
	forward := Risk(settledRecords(100, -50))
	backward := Risk(settledRecords(-50, 100))

	assert.InDelta(t, 50.0, forward.MaxDrawdown, 1e-9)
	assert.InDelta(t, 50.0, backward.MaxDrawdown, 1e-9)

	deepDip := Risk(settledRecords(-50, -50, 200))
	assert.InDelta(t, 100.0, deepDip.MaxDrawdown, 1e-9)
}

func TestCalculators_Idempotent(t *testing.T) {
	records := settledRecords(100, -50, 200, -30)

	assert.Equal(t, Aggregate(records), Aggregate(records))
	assert.Equal(t, MonthlyBuckets(records), MonthlyBuckets(records))
	assert.Equal(t, BuildCumulativeSeries(records), BuildCumulativeSeries(records))
	assert.Equal(t, Risk(records), Risk(records))
}
