package analytics

import "sort"

const monthKeyLayout = "2006-01"

// Aggregate 计算总盈亏、胜率、平均盈亏。
// 输入应当是已结算的记录；未结算记录按 0 盈亏参与计数，调用方应提前过滤。
func Aggregate(records []Record) AggregateStats {
	stats := AggregateStats{TradeCount: len(records)}
	if len(records) == 0 {
		return stats
	}

	winCount := 0
	for _, r := range records {
		profit := profitOf(r)
		stats.TotalProfit += profit
		if profit > 0 {
			winCount++
		}
	}

	stats.WinRate = float64(winCount) / float64(len(records)) * 100
	stats.AverageProfit = stats.TotalProfit / float64(len(records))
	return stats
}

// MonthlyBuckets 按自然月（yyyy-MM）分组统计，返回按月份升序排列的桶。
func MonthlyBuckets(records []Record) []MonthlyBucket {
	byMonth := make(map[string]*MonthlyBucket)
	for _, r := range records {
		key := r.TradeDate.Format(monthKeyLayout)
		bucket, ok := byMonth[key]
		if !ok {
			bucket = &MonthlyBucket{Month: key}
			byMonth[key] = bucket
		}

		profit := profitOf(r)
		bucket.ProfitSum += profit
		bucket.TradeCount++
		if profit > 0 {
			bucket.WinCount++
		}
	}

	buckets := make([]MonthlyBucket, 0, len(byMonth))
	for _, bucket := range byMonth {
		buckets = append(buckets, *bucket)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Month < buckets[j].Month
	})
	return buckets
}
