package repo

import (
	"context"

	"github.com/go-orz/orz"
	"github.com/linyuan/tradenote/internal/models"
	"gorm.io/gorm"
)

func NewTradeRecordRepo(db *gorm.DB) *TradeRecordRepo {
	return &TradeRecordRepo{
		Repository: orz.NewRepository[models.TradeRecord, string](db),
	}
}

type TradeRecordRepo struct {
	orz.Repository[models.TradeRecord, string]
}

// FindSettled 获取所有已结算记录，按创建顺序返回。
// 已结算以 net_profit 存在为准：没有计划价的记录结算后没有盈亏，不参与统计。
// 回撤等指标依赖遍历顺序，这里固定用录入顺序保证结果可复现。
func (r TradeRecordRepo) FindSettled(ctx context.Context) ([]models.TradeRecord, error) {
	var records []models.TradeRecord
	db := r.GetDB(ctx)
	err := db.Table(r.GetTableName()).
		Where("status = ?", models.TradeStatusCompleted).
		Where("net_profit IS NOT NULL").
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}

// FindByStatus 按状态查询，按交易日期倒序
func (r TradeRecordRepo) FindByStatus(ctx context.Context, status string) ([]models.TradeRecord, error) {
	var records []models.TradeRecord
	db := r.GetDB(ctx)
	err := db.Table(r.GetTableName()).
		Where("status = ?", status).
		Order("trade_date DESC").
		Find(&records).Error
	return records, err
}

// FindByStockCode 查询指定股票的全部记录
func (r TradeRecordRepo) FindByStockCode(ctx context.Context, stockCode string) ([]models.TradeRecord, error) {
	var records []models.TradeRecord
	db := r.GetDB(ctx)
	err := db.Table(r.GetTableName()).
		Where("stock_code = ?", stockCode).
		Order("trade_date DESC").
		Find(&records).Error
	return records, err
}

// FindRecent 获取最近的交易记录
func (r TradeRecordRepo) FindRecent(ctx context.Context, limit int) ([]models.TradeRecord, error) {
	var records []models.TradeRecord
	db := r.GetDB(ctx)
	err := db.Table(r.GetTableName()).
		Order("trade_date DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}
