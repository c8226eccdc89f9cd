package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/linyuan/tradenote/internal/service"
	"github.com/linyuan/tradenote/internal/xe"
	"go.uber.org/zap"
)

// JournalHandler 交易记录HTTP处理器
type JournalHandler struct {
	journalService *service.JournalService
	logger         *zap.Logger
}

// NewJournalHandler 创建交易记录处理器
func NewJournalHandler(journalService *service.JournalService, logger *zap.Logger) *JournalHandler {
	return &JournalHandler{
		journalService: journalService,
		logger:         logger,
	}
}

// ListRecords 查询交易记录
// GET /api/journal/records?status=planned&stock_code=600519
func (h *JournalHandler) ListRecords(c echo.Context) error {
	ctx := c.Request().Context()

	status := c.QueryParam("status")
	stockCode := c.QueryParam("stock_code")

	records, err := h.journalService.ListRecords(ctx, status, stockCode)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"count":   len(records),
		"records": records,
	})
}

// CreatePlan 新建交易计划
// POST /api/journal/records
func (h *JournalHandler) CreatePlan(c echo.Context) error {
	ctx := c.Request().Context()

	var req service.CreatePlanRequest
	if err := c.Bind(&req); err != nil {
		return xe.ErrInvalidParams
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	record, err := h.journalService.CreatePlan(ctx, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, record)
}

// GetRecord 获取单条交易记录
// GET /api/journal/records/:id
func (h *JournalHandler) GetRecord(c echo.Context) error {
	ctx := c.Request().Context()

	record, err := h.journalService.GetRecord(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, record)
}

// DeleteRecord 删除交易记录
// DELETE /api/journal/records/:id
func (h *JournalHandler) DeleteRecord(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.journalService.DeleteRecord(ctx, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "deleted",
	})
}

// Settle 结算交易计划
// POST /api/journal/records/:id/settle
func (h *JournalHandler) Settle(c echo.Context) error {
	ctx := c.Request().Context()

	var req service.SettleRequest
	if err := c.Bind(&req); err != nil {
		return xe.ErrInvalidParams
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	record, result, err := h.journalService.Settle(ctx, c.Param("id"), req)
	if err != nil {
		return err
	}

	h.logger.Info("settlement via API",
		zap.String("id", record.ID),
		zap.String("verdict", string(result.Verdict)))

	return c.JSON(http.StatusOK, map[string]interface{}{
		"record":     record,
		"settlement": result,
	})
}

// RegisterRoutes 注册路由
func (h *JournalHandler) RegisterRoutes(g *echo.Group) {
	journal := g.Group("/journal")

	journal.GET("/records", h.ListRecords)
	journal.POST("/records", h.CreatePlan)
	journal.GET("/records/:id", h.GetRecord)
	journal.DELETE("/records/:id", h.DeleteRecord)
	journal.POST("/records/:id/settle", h.Settle)
}
