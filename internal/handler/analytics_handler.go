package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/linyuan/tradenote/internal/service"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// AnalyticsHandler 绩效分析HTTP处理器
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	logger           *zap.Logger
}

// NewAnalyticsHandler 创建绩效分析处理器
func NewAnalyticsHandler(analyticsService *service.AnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// GetOverview 获取统计概览
// GET /api/analytics/overview
func (h *AnalyticsHandler) GetOverview(c echo.Context) error {
	ctx := c.Request().Context()

	overview, err := h.analyticsService.GetOverview(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, overview)
}

// GetStats 获取汇总统计
// GET /api/analytics/stats
func (h *AnalyticsHandler) GetStats(c echo.Context) error {
	ctx := c.Request().Context()

	stats, err := h.analyticsService.GetAggregateStats(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, stats)
}

// GetMonthly 获取月度统计
// GET /api/analytics/monthly
func (h *AnalyticsHandler) GetMonthly(c echo.Context) error {
	ctx := c.Request().Context()

	buckets, err := h.analyticsService.GetMonthlyBuckets(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"count":   len(buckets),
		"monthly": buckets,
	})
}

// GetEquityCurve 获取累计盈亏曲线
// GET /api/analytics/equity-curve
func (h *AnalyticsHandler) GetEquityCurve(c echo.Context) error {
	ctx := c.Request().Context()

	series, err := h.analyticsService.GetEquityCurve(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, series)
}

// GetRisk 获取风险指标
// GET /api/analytics/risk
func (h *AnalyticsHandler) GetRisk(c echo.Context) error {
	ctx := c.Request().Context()

	metrics, err := h.analyticsService.GetRiskMetrics(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, metrics)
}

// GetSnapshots 获取统计快照历史
// GET /api/analytics/snapshots?limit=30
func (h *AnalyticsHandler) GetSnapshots(c echo.Context) error {
	ctx := c.Request().Context()

	limit := 30
	if l := c.QueryParam("limit"); l != "" {
		limit = cast.ToInt(l)
		if limit <= 0 {
			limit = 30
		}
	}

	snapshots, err := h.analyticsService.GetSnapshots(ctx, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"count":     len(snapshots),
		"snapshots": snapshots,
	})
}

// SaveSnapshot 立即保存一次统计快照
// POST /api/analytics/snapshots
func (h *AnalyticsHandler) SaveSnapshot(c echo.Context) error {
	ctx := c.Request().Context()

	snapshot, err := h.analyticsService.SaveSnapshot(ctx)
	if err != nil {
		return err
	}

	h.logger.Info("snapshot saved via API", zap.String("id", snapshot.ID))

	return c.JSON(http.StatusOK, snapshot)
}

// RegisterRoutes 注册路由
func (h *AnalyticsHandler) RegisterRoutes(g *echo.Group) {
	analytics := g.Group("/analytics")

	analytics.GET("/overview", h.GetOverview)
	analytics.GET("/stats", h.GetStats)
	analytics.GET("/monthly", h.GetMonthly)
	analytics.GET("/equity-curve", h.GetEquityCurve)
	analytics.GET("/risk", h.GetRisk)
	analytics.GET("/snapshots", h.GetSnapshots)
	analytics.POST("/snapshots", h.SaveSnapshot)
}
