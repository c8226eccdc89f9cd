// Package settlement 按交易计划结算实际成交，计算成本、盈亏与计划偏差。
package settlement

import "errors"

// ErrInvalidFill 成交价必须大于 0，成交数量不能为负
var ErrInvalidFill = errors.New("settlement: invalid fill input")

// Side 交易方向
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Verdict 执行偏差结论
type Verdict string

const (
	VerdictOnTarget Verdict = "on-target"
	VerdictExceeded Verdict = "exceeded-expectation"
	VerdictBelow    Verdict = "below-expectation"
)

// 偏差在 ±5% 以内视为按计划执行
const onTargetTolerancePercent = 5.0

// Plan 结算前的交易计划，除方向外均为可选项。
type Plan struct {
	Side            Side
	PlanPrice       *float64
	PlanQuantity    *int
	StopLossPrice   *float64
	TakeProfitPrice *float64
}

// Fill 用户录入的实际成交数据
type Fill struct {
	ActualPrice    float64
	ActualQuantity int
	Commission     float64
	Tax            float64
}

// Result 结算结果。可选字段为 nil 表示缺少对应的计划输入，无法计算。
type Result struct {
	TotalAmount float64 `json:"total_amount"` // 成交金额
	TotalCost   float64 `json:"total_cost"`   // 实际成本/收入（含费用）

	NetProfit  *float64 `json:"net_profit,omitempty"`  // 相对计划的盈亏
	ProfitRate *float64 `json:"profit_rate,omitempty"` // 盈亏率（百分比）

	PlannedProfit   *float64 `json:"planned_profit,omitempty"`    // 计划盈利目标
	PlannedLoss     *float64 `json:"planned_loss,omitempty"`      // 计划亏损上限
	ProfitRiskRatio *float64 `json:"profit_risk_ratio,omitempty"` // 盈亏比

	Deviation        *float64 `json:"deviation,omitempty"`         // 实际与目标的偏差
	DeviationPercent *float64 `json:"deviation_percent,omitempty"` // 偏差百分比
	Verdict          Verdict  `json:"verdict,omitempty"`           // 偏差结论
}

// Settle 根据计划与实际成交计算结算结果。
// 买入方向沿用既有口径：实际买入成本高于计划时 NetProfit 为正数。
func Settle(plan Plan, fill Fill) (Result, error) {
	if fill.ActualPrice <= 0 || fill.ActualQuantity < 0 {
		return Result{}, ErrInvalidFill
	}

	var result Result
	result.TotalAmount = fill.ActualPrice * float64(fill.ActualQuantity)

	switch plan.Side {
	case SideBuy:
		result.TotalCost = result.TotalAmount + fill.Commission + fill.Tax
		if plan.PlanPrice != nil {
			planTotalCost := *plan.PlanPrice*float64(fill.ActualQuantity) + fill.Commission + fill.Tax
			netProfit := result.TotalCost - planTotalCost
			result.NetProfit = &netProfit
		}
	case SideSell:
		result.TotalCost = result.TotalAmount - fill.Commission - fill.Tax
		if plan.PlanPrice != nil {
			planTotalCost := *plan.PlanPrice*float64(fill.ActualQuantity) - fill.Commission - fill.Tax
			netProfit := result.TotalCost - planTotalCost
			result.NetProfit = &netProfit
		}
	default:
		return Result{}, ErrInvalidFill
	}

	if result.NetProfit != nil && result.TotalCost > 0 {
		profitRate := *result.NetProfit / result.TotalCost * 100
		result.ProfitRate = &profitRate
	}

	applyPlannedTargets(plan, fill, &result)
	applyDeviation(&result)

	return result, nil
}

// applyPlannedTargets 计算计划盈利目标与计划亏损上限，
// 需要计划价、止损价、止盈价、计划数量全部存在。
func applyPlannedTargets(plan Plan, fill Fill, result *Result) {
	if plan.PlanPrice == nil || plan.StopLossPrice == nil || plan.TakeProfitPrice == nil || plan.PlanQuantity == nil {
		return
	}

	planPrice := *plan.PlanPrice
	quantity := float64(*plan.PlanQuantity)

	var plannedProfit, plannedLoss float64
	switch plan.Side {
	case SideBuy:
		plannedProfit = (*plan.TakeProfitPrice-planPrice)*quantity - fill.Commission - fill.Tax
		plannedLoss = (planPrice-*plan.StopLossPrice)*quantity + fill.Commission + fill.Tax
	case SideSell:
		plannedProfit = (planPrice-*plan.TakeProfitPrice)*quantity - fill.Commission - fill.Tax
		plannedLoss = (*plan.StopLossPrice-planPrice)*quantity + fill.Commission + fill.Tax
	}

	result.PlannedProfit = &plannedProfit
	result.PlannedLoss = &plannedLoss

	profitRiskRatio := 0.0
	if plannedLoss > 0 {
		profitRiskRatio = plannedProfit / plannedLoss
	}
	result.ProfitRiskRatio = &profitRiskRatio
}

// applyDeviation 对比实际盈亏与计划目标，给出偏差结论。
// 盈利时对比计划盈利目标，亏损时对比计划亏损上限的相反数。
func applyDeviation(result *Result) {
	if result.NetProfit == nil || result.PlannedProfit == nil || result.PlannedLoss == nil {
		return
	}

	netProfit := *result.NetProfit
	expectedTarget := *result.PlannedProfit
	if netProfit < 0 {
		expectedTarget = -*result.PlannedLoss
	}

	deviation := netProfit - expectedTarget
	deviationPercent := 0.0
	if expectedTarget != 0 {
		abs := expectedTarget
		if abs < 0 {
			abs = -abs
		}
		deviationPercent = deviation / abs * 100
	}

	result.Deviation = &deviation
	result.DeviationPercent = &deviationPercent

	switch {
	case deviationPercent >= -onTargetTolerancePercent && deviationPercent <= onTargetTolerancePercent:
		result.Verdict = VerdictOnTarget
	case deviationPercent > onTargetTolerancePercent:
		result.Verdict = VerdictExceeded
	default:
		result.Verdict = VerdictBelow
	}
}
