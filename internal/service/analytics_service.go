package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-orz/orz"
	"github.com/linyuan/tradenote/internal/config"
	"github.com/linyuan/tradenote/internal/models"
	"github.com/linyuan/tradenote/internal/repo"
	"github.com/linyuan/tradenote/pkg/analytics"
	"github.com/oklog/ulid/v2"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 默认每个交易日 15:30 落一次统计快照
const defaultSnapshotCron = "30 15 * * *"

// AnalyticsService 绩效分析服务：加载已结算记录并执行各项统计计算
type AnalyticsService struct {
	logger *zap.Logger

	*orz.Service
	*repo.TradeRecordRepo
	snapshotRepo *repo.AnalyticsSnapshotRepo

	conf *config.Config
	cron *cron.Cron
}

// NewAnalyticsService 创建绩效分析服务
func NewAnalyticsService(db *gorm.DB, conf *config.Config, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		logger:          logger,
		Service:         orz.NewService(db),
		TradeRecordRepo: repo.NewTradeRecordRepo(db),
		snapshotRepo:    repo.NewAnalyticsSnapshotRepo(db),
		conf:            conf,
	}
}

// Overview 概览页一次性返回的统计结果
type Overview struct {
	Stats   analytics.AggregateStats  `json:"stats"`
	Risk    analytics.RiskMetrics     `json:"risk"`
	Monthly []analytics.MonthlyBucket `json:"monthly"`
}

// loadSettledRecords 加载已结算记录并转换为分析引擎输入。
// 保持仓储返回的录入顺序，回撤计算依赖这个顺序。
func (s *AnalyticsService) loadSettledRecords(ctx context.Context) ([]analytics.Record, error) {
	settled, err := s.TradeRecordRepo.FindSettled(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settled records: %w", err)
	}

	records := make([]analytics.Record, 0, len(settled))
	for i := range settled {
		records = append(records, settled[i].AnalyticsRecord())
	}
	return records, nil
}

// GetOverview 汇总统计 + 风险指标 + 月度统计
func (s *AnalyticsService) GetOverview(ctx context.Context) (*Overview, error) {
	records, err := s.loadSettledRecords(ctx)
	if err != nil {
		return nil, err
	}

	return &Overview{
		Stats:   analytics.Aggregate(records),
		Risk:    analytics.Risk(records),
		Monthly: analytics.MonthlyBuckets(records),
	}, nil
}

// GetAggregateStats 汇总统计
func (s *AnalyticsService) GetAggregateStats(ctx context.Context) (analytics.AggregateStats, error) {
	records, err := s.loadSettledRecords(ctx)
	if err != nil {
		return analytics.AggregateStats{}, err
	}
	return analytics.Aggregate(records), nil
}

// GetMonthlyBuckets 月度统计，按月份升序
func (s *AnalyticsService) GetMonthlyBuckets(ctx context.Context) ([]analytics.MonthlyBucket, error) {
	records, err := s.loadSettledRecords(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.MonthlyBuckets(records), nil
}

// GetEquityCurve 累计盈亏曲线
func (s *AnalyticsService) GetEquityCurve(ctx context.Context) (analytics.CumulativeSeries, error) {
	records, err := s.loadSettledRecords(ctx)
	if err != nil {
		return analytics.CumulativeSeries{}, err
	}
	return analytics.BuildCumulativeSeries(records), nil
}

// GetRiskMetrics 风险指标
func (s *AnalyticsService) GetRiskMetrics(ctx context.Context) (analytics.RiskMetrics, error) {
	records, err := s.loadSettledRecords(ctx)
	if err != nil {
		return analytics.RiskMetrics{}, err
	}
	return analytics.Risk(records), nil
}

// SaveSnapshot 计算一次全量统计并落盘
func (s *AnalyticsService) SaveSnapshot(ctx context.Context) (*models.AnalyticsSnapshot, error) {
	overview, err := s.GetOverview(ctx)
	if err != nil {
		return nil, err
	}

	monthlyJSON, err := json.Marshal(overview.Monthly)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal monthly buckets: %w", err)
	}

	snapshot := &models.AnalyticsSnapshot{
		ID:             ulid.Make().String(),
		TotalProfit:    overview.Stats.TotalProfit,
		WinRate:        overview.Stats.WinRate,
		AverageProfit:  overview.Stats.AverageProfit,
		TradeCount:     overview.Stats.TradeCount,
		MaxDrawdown:    overview.Risk.MaxDrawdown,
		ProfitFactor:   overview.Risk.ProfitFactor,
		MaxProfit:      overview.Risk.MaxProfit,
		MaxLoss:        overview.Risk.MaxLoss,
		MonthlyBuckets: datatypes.JSON(monthlyJSON),
		RecordedAt:     time.Now(),
	}

	if err := s.snapshotRepo.Create(ctx, snapshot); err != nil {
		return nil, err
	}

	s.logger.Info("analytics snapshot saved",
		zap.String("id", snapshot.ID),
		zap.Int("trade_count", snapshot.TradeCount),
		zap.Float64("total_profit", snapshot.TotalProfit))

	return snapshot, nil
}

// GetSnapshots 获取最近的统计快照
func (s *AnalyticsService) GetSnapshots(ctx context.Context, limit int) ([]models.AnalyticsSnapshot, error) {
	return s.snapshotRepo.FindRecent(ctx, limit)
}

// StartSnapshotJob 启动定时快照任务
func (s *AnalyticsService) StartSnapshotJob() error {
	if !s.conf.Analytics.SnapshotEnabled {
		s.logger.Info("analytics snapshot job disabled")
		return nil
	}

	cronExpr := s.conf.Analytics.SnapshotCron
	if cronExpr == "" {
		cronExpr = defaultSnapshotCron
	}

	s.cron = cron.New()
	_, err := s.cron.AddFunc(cronExpr, func() {
		if _, err := s.SaveSnapshot(context.Background()); err != nil {
			s.logger.Error("scheduled snapshot failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add snapshot cron job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("analytics snapshot job started", zap.String("cron_expression", cronExpr))
	return nil
}

// StopSnapshotJob 停止定时快照任务，等待进行中的任务结束
func (s *AnalyticsService) StopSnapshotJob() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.logger.Info("analytics snapshot job stopped")
	}
}
