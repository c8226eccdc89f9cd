package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-orz/orz"
	"github.com/linyuan/tradenote/internal/config"
	"github.com/linyuan/tradenote/internal/models"
	"github.com/linyuan/tradenote/internal/repo"
	"github.com/linyuan/tradenote/internal/telegram"
	"github.com/linyuan/tradenote/internal/xe"
	"github.com/linyuan/tradenote/pkg/settlement"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// JournalService 交易记录管理服务：计划录入、查询与结算
type JournalService struct {
	logger *zap.Logger

	*orz.Service
	*repo.TradeRecordRepo

	conf *config.Config
	tg   *telegram.Telegram

	// 结算是对记录的一次性写入，串行执行避免并发重复结算
	settleMutex sync.Mutex
}

// NewJournalService 创建交易记录服务
func NewJournalService(db *gorm.DB, conf *config.Config, logger *zap.Logger, tg *telegram.Telegram) *JournalService {
	return &JournalService{
		logger:          logger,
		Service:         orz.NewService(db),
		TradeRecordRepo: repo.NewTradeRecordRepo(db),
		conf:            conf,
		tg:              tg,
	}
}

// CreatePlanRequest 新建交易计划请求
type CreatePlanRequest struct {
	TradeType string    `json:"trade_type" validate:"required,oneof=buy sell"`
	StockCode string    `json:"stock_code" validate:"required"`
	StockName string    `json:"stock_name"`
	TradeDate time.Time `json:"trade_date" validate:"required"`

	PlanPrice       *float64 `json:"plan_price" validate:"omitempty,gt=0"`
	PlanQuantity    *int     `json:"plan_quantity" validate:"omitempty,gte=0"`
	StopLossPrice   *float64 `json:"stop_loss_price" validate:"omitempty,gt=0"`
	TakeProfitPrice *float64 `json:"take_profit_price" validate:"omitempty,gt=0"`

	PositionPercentage *float64 `json:"position_percentage" validate:"omitempty,gte=0,lte=100"`
	RiskPercentage     *float64 `json:"risk_percentage" validate:"omitempty,gte=0,lte=100"`
}

// SettleRequest 结算请求，由用户在结算表单录入
type SettleRequest struct {
	ActualPrice    float64  `json:"actual_price" validate:"required,gt=0"`
	ActualQuantity int      `json:"actual_quantity" validate:"gte=0"`
	Commission     *float64 `json:"commission" validate:"omitempty,gte=0"`
	Tax            *float64 `json:"tax" validate:"omitempty,gte=0"`
}

// CreatePlan 新建一条交易计划，状态为 planned
func (s *JournalService) CreatePlan(ctx context.Context, req CreatePlanRequest) (*models.TradeRecord, error) {
	if req.TradeType != string(settlement.SideBuy) && req.TradeType != string(settlement.SideSell) {
		return nil, xe.ErrInvalidTradeType
	}

	record := &models.TradeRecord{
		ID:                 ulid.Make().String(),
		TradeType:          req.TradeType,
		StockCode:          req.StockCode,
		StockName:          req.StockName,
		Status:             models.TradeStatusPlanned,
		TradeDate:          req.TradeDate,
		PlanPrice:          req.PlanPrice,
		PlanQuantity:       req.PlanQuantity,
		StopLossPrice:      req.StopLossPrice,
		TakeProfitPrice:    req.TakeProfitPrice,
		PositionPercentage: req.PositionPercentage,
		RiskPercentage:     req.RiskPercentage,
	}

	if err := s.TradeRecordRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("trade plan created",
		zap.String("id", record.ID),
		zap.String("stock_code", record.StockCode),
		zap.String("trade_type", record.TradeType))

	return record, nil
}

// ListRecords 查询交易记录，status/stockCode 为空时不过滤
func (s *JournalService) ListRecords(ctx context.Context, status, stockCode string) ([]models.TradeRecord, error) {
	if stockCode != "" {
		return s.TradeRecordRepo.FindByStockCode(ctx, stockCode)
	}
	if status != "" {
		return s.TradeRecordRepo.FindByStatus(ctx, status)
	}
	return s.TradeRecordRepo.FindAll(ctx)
}

// GetRecord 获取单条交易记录
func (s *JournalService) GetRecord(ctx context.Context, id string) (*models.TradeRecord, error) {
	record, err := s.TradeRecordRepo.FindById(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xe.ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

// DeleteRecord 删除交易记录
func (s *JournalService) DeleteRecord(ctx context.Context, id string) error {
	return s.TradeRecordRepo.DeleteById(ctx, id)
}

// Settle 按实际成交结算一条交易计划。
// 每条记录只允许结算一次，重复结算返回 xe.ErrAlreadySettled。
func (s *JournalService) Settle(ctx context.Context, id string, req SettleRequest) (*models.TradeRecord, *settlement.Result, error) {
	s.settleMutex.Lock()
	defer s.settleMutex.Unlock()

	if req.ActualPrice <= 0 || req.ActualQuantity < 0 {
		return nil, nil, xe.ErrInvalidSettlementInput
	}

	commission := s.conf.Journal.DefaultCommission
	if req.Commission != nil {
		commission = *req.Commission
	}
	tax := s.conf.Journal.DefaultTax
	if req.Tax != nil {
		tax = *req.Tax
	}
	if commission < 0 || tax < 0 {
		return nil, nil, xe.ErrInvalidSettlementInput
	}

	var record models.TradeRecord
	var result settlement.Result

	err := s.Transaction(ctx, func(ctx context.Context) error {
		var err error
		record, err = s.TradeRecordRepo.FindById(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return xe.ErrRecordNotFound
			}
			return err
		}

		if record.Status == models.TradeStatusCompleted || record.IsSettled() {
			return xe.ErrAlreadySettled
		}

		plan := settlement.Plan{
			Side:            settlement.Side(record.TradeType),
			PlanPrice:       record.PlanPrice,
			PlanQuantity:    record.PlanQuantity,
			StopLossPrice:   record.StopLossPrice,
			TakeProfitPrice: record.TakeProfitPrice,
		}
		fill := settlement.Fill{
			ActualPrice:    req.ActualPrice,
			ActualQuantity: req.ActualQuantity,
			Commission:     commission,
			Tax:            tax,
		}

		result, err = settlement.Settle(plan, fill)
		if err != nil {
			if errors.Is(err, settlement.ErrInvalidFill) {
				return xe.ErrInvalidSettlementInput
			}
			return err
		}

		now := time.Now()
		record.ActualPrice = &fill.ActualPrice
		record.ActualQuantity = &fill.ActualQuantity
		record.Commission = &fill.Commission
		record.Tax = &fill.Tax
		record.TotalCost = &result.TotalCost
		record.NetProfit = result.NetProfit
		record.ProfitRate = result.ProfitRate
		record.SettledAt = &now
		record.Status = models.TradeStatusCompleted

		return s.TradeRecordRepo.Save(ctx, &record)
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("trade settled",
		zap.String("id", record.ID),
		zap.String("stock_code", record.StockCode),
		zap.Float64("total_cost", result.TotalCost),
		zap.String("verdict", string(result.Verdict)))

	s.notifySettlement(&record, &result)

	return &record, &result, nil
}

// notifySettlement 结算完成后推送通知，失败只记日志
func (s *JournalService) notifySettlement(record *models.TradeRecord, result *settlement.Result) {
	if s.tg == nil || !s.conf.Telegram.Enabled {
		return
	}

	msg := telegram.RenderSettlementMessage(record, result)
	if err := s.tg.Notify(s.conf.Telegram.ChatID, msg); err != nil {
		s.logger.Error("failed to send settlement notification", zap.Error(err))
	}
}
