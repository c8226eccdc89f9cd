package analytics

import "sort"

// BuildCumulativeSeries 构建按交易日期升序的累计盈亏序列。
// 对输入的副本做稳定排序，日期相同的记录保持原有相对顺序，不修改调用方的切片。
func BuildCumulativeSeries(records []Record) CumulativeSeries {
	if len(records) == 0 {
		return CumulativeSeries{Spots: []CumulativeSpot{}}
	}

	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TradeDate.Before(sorted[j].TradeDate)
	})

	series := CumulativeSeries{Spots: make([]CumulativeSpot, 0, len(sorted))}
	runningTotal := 0.0
	for i, r := range sorted {
		runningTotal += profitOf(r)
		series.Spots = append(series.Spots, CumulativeSpot{
			Index:            i,
			CumulativeProfit: runningTotal,
		})

		if i == 0 {
			series.Min = runningTotal
			series.Max = runningTotal
			continue
		}
		if runningTotal < series.Min {
			series.Min = runningTotal
		}
		if runningTotal > series.Max {
			series.Max = runningTotal
		}
	}

	return series
}
