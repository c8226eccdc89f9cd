package models

import (
	"time"

	"github.com/linyuan/tradenote/pkg/analytics"
	"gorm.io/gorm"
)

// 交易记录状态
const (
	TradeStatusPlanned   = "planned"   // 仅有计划，未结算
	TradeStatusCompleted = "completed" // 已录入实际成交并结算
)

// TradeRecord 交易记录，一条计划及其结算结果
type TradeRecord struct {
	ID        string `gorm:"primaryKey;type:varchar(26)" json:"id"`
	TradeType string `gorm:"type:varchar(10);not null" json:"trade_type"`         // buy/sell
	StockCode string `gorm:"type:varchar(20);not null;index" json:"stock_code"`   // 股票代码
	StockName string `gorm:"type:varchar(50)" json:"stock_name"`                  // 股票名称
	Status    string `gorm:"type:varchar(10);not null;index" json:"status"`       // planned/completed

	TradeDate time.Time `gorm:"not null;index" json:"trade_date"` // 交易日期，用于排序与按月分组

	// 计划输入，均为可选
	PlanPrice       *float64 `gorm:"type:decimal(20,4)" json:"plan_price,omitempty"`
	PlanQuantity    *int     `json:"plan_quantity,omitempty"`
	StopLossPrice   *float64 `gorm:"type:decimal(20,4)" json:"stop_loss_price,omitempty"`
	TakeProfitPrice *float64 `gorm:"type:decimal(20,4)" json:"take_profit_price,omitempty"`

	// 实际成交，存在即表示已结算
	ActualPrice    *float64 `gorm:"type:decimal(20,4)" json:"actual_price,omitempty"`
	ActualQuantity *int     `json:"actual_quantity,omitempty"`
	Commission     *float64 `gorm:"type:decimal(20,4)" json:"commission,omitempty"`
	Tax            *float64 `gorm:"type:decimal(20,4)" json:"tax,omitempty"`

	// 结算输出，由结算流程写入一次
	NetProfit  *float64 `gorm:"type:decimal(20,4)" json:"net_profit,omitempty"`
	ProfitRate *float64 `gorm:"type:decimal(20,4)" json:"profit_rate,omitempty"`
	TotalCost  *float64 `gorm:"type:decimal(20,4)" json:"total_cost,omitempty"`

	// 计划元数据，仅透传
	PositionPercentage *float64 `gorm:"type:decimal(10,4)" json:"position_percentage,omitempty"`
	RiskPercentage     *float64 `gorm:"type:decimal(10,4)" json:"risk_percentage,omitempty"`

	SettledAt *time.Time     `json:"settled_at,omitempty"` // 结算时间
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName 指定表名
func (TradeRecord) TableName() string {
	return "trade_records"
}

// IsSettled 是否已结算（NetProfit 存在即视为已结算）
func (r *TradeRecord) IsSettled() bool {
	return r.NetProfit != nil
}

// AnalyticsRecord 转换为分析引擎的记录视图
func (r *TradeRecord) AnalyticsRecord() analytics.Record {
	return analytics.Record{
		TradeDate: r.TradeDate,
		NetProfit: r.NetProfit,
	}
}
