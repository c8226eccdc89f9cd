package analytics

// Risk 单次遍历计算最大回撤、盈亏比、最大单笔盈利/亏损。
// 回撤基于累计盈亏曲线，按调用方提供的顺序累加；传入顺序不同回撤结果可能不同，
// 调用方需要自己保证顺序是确定的。
func Risk(records []Record) RiskMetrics {
	var metrics RiskMetrics

	cumulativeProfit := 0.0
	peakValue := 0.0
	totalProfitSum := 0.0
	totalLossSum := 0.0

	for _, r := range records {
		profit := profitOf(r)

		cumulativeProfit += profit
		if cumulativeProfit > peakValue {
			peakValue = cumulativeProfit
		}
		if drawdown := peakValue - cumulativeProfit; drawdown > metrics.MaxDrawdown {
			metrics.MaxDrawdown = drawdown
		}

		if profit > 0 {
			totalProfitSum += profit
			if profit > metrics.MaxProfit {
				metrics.MaxProfit = profit
			}
		} else if profit < 0 {
			totalLossSum += -profit
			if profit < metrics.MaxLoss {
				metrics.MaxLoss = profit
			}
		}
	}

	if totalLossSum > 0 {
		metrics.ProfitFactor = totalProfitSum / totalLossSum
	}
	return metrics
}
