package models

import (
	"time"

	"gorm.io/datatypes"
)

// AnalyticsSnapshot 定时任务落盘的统计快照，概览页直接读取，避免每次全量重算
type AnalyticsSnapshot struct {
	ID string `gorm:"primaryKey;type:varchar(26)" json:"id"`

	TotalProfit   float64 `gorm:"type:decimal(20,4)" json:"total_profit"`
	WinRate       float64 `gorm:"type:decimal(10,4)" json:"win_rate"`
	AverageProfit float64 `gorm:"type:decimal(20,4)" json:"average_profit"`
	TradeCount    int     `json:"trade_count"`

	MaxDrawdown  float64 `gorm:"type:decimal(20,4)" json:"max_drawdown"`
	ProfitFactor float64 `gorm:"type:decimal(10,4)" json:"profit_factor"`
	MaxProfit    float64 `gorm:"type:decimal(20,4)" json:"max_profit"`
	MaxLoss      float64 `gorm:"type:decimal(20,4)" json:"max_loss"`

	// 月度统计（JSON 序列化的 analytics.MonthlyBucket 列表）
	MonthlyBuckets datatypes.JSON `gorm:"type:json" json:"monthly_buckets"`

	RecordedAt time.Time `gorm:"not null;index" json:"recorded_at"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (AnalyticsSnapshot) TableName() string {
	return "analytics_snapshots"
}
