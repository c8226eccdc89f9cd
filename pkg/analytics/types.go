package analytics

import "time"

// Record 分析引擎消费的最小交易记录视图。
// NetProfit 为 nil 表示该记录尚未结算，不参与盈亏统计。
type Record struct {
	TradeDate time.Time
	NetProfit *float64
}

// AggregateStats 汇总统计结果
type AggregateStats struct {
	TotalProfit   float64 `json:"total_profit"`   // 总盈亏
	WinRate       float64 `json:"win_rate"`       // 胜率（0-100）
	AverageProfit float64 `json:"average_profit"` // 平均盈亏
	TradeCount    int     `json:"trade_count"`    // 已结算交易数
}

// MonthlyBucket 月度统计桶，Month 格式为 yyyy-MM
type MonthlyBucket struct {
	Month      string  `json:"month"`
	ProfitSum  float64 `json:"profit_sum"`
	TradeCount int     `json:"trade_count"`
	WinCount   int     `json:"win_count"`
}

// WinRatePercent 桶内胜率
func (b MonthlyBucket) WinRatePercent() float64 {
	if b.TradeCount == 0 {
		return 0
	}
	return float64(b.WinCount) / float64(b.TradeCount) * 100
}

// CumulativeSpot 累计盈亏曲线上的一个点
type CumulativeSpot struct {
	Index            int     `json:"index"`
	CumulativeProfit float64 `json:"cumulative_profit"`
}

// CumulativeSeries 累计盈亏序列及其原始上下界（供前端决定坐标轴范围）
type CumulativeSeries struct {
	Spots []CumulativeSpot `json:"spots"`
	Min   float64          `json:"min"`
	Max   float64          `json:"max"`
}

// RiskMetrics 风险指标
type RiskMetrics struct {
	MaxDrawdown  float64 `json:"max_drawdown"`  // 最大回撤（>= 0）
	ProfitFactor float64 `json:"profit_factor"` // 盈亏比（无亏损时为 0）
	MaxProfit    float64 `json:"max_profit"`    // 最大单笔盈利
	MaxLoss      float64 `json:"max_loss"`      // 最大单笔亏损（<= 0）
}

func profitOf(r Record) float64 {
	if r.NetProfit == nil {
		return 0
	}
	return *r.NetProfit
}
