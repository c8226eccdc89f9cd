package telegram

import (
	"fmt"

	"github.com/linyuan/tradenote/internal/models"
	"github.com/linyuan/tradenote/pkg/settlement"
	"github.com/valyala/fasttemplate"
)

const settlementMessageTemplate = `*交易结算完成*

股票: {{stock_name}} ({{stock_code}})
方向: {{trade_type}}
成交金额: {{total_amount}}
实际成本: {{total_cost}}
盈亏: {{net_profit}}
盈亏率: {{profit_rate}}
执行评价: {{verdict}}`

var verdictText = map[settlement.Verdict]string{
	settlement.VerdictOnTarget: "按计划执行",
	settlement.VerdictExceeded: "超出预期",
	settlement.VerdictBelow:    "不及预期",
}

// RenderSettlementMessage 渲染结算通知消息
func RenderSettlementMessage(record *models.TradeRecord, result *settlement.Result) string {
	netProfit := "-"
	if result.NetProfit != nil {
		netProfit = fmt.Sprintf("%.2f", *result.NetProfit)
	}
	profitRate := "-"
	if result.ProfitRate != nil {
		profitRate = fmt.Sprintf("%.2f%%", *result.ProfitRate)
	}
	verdict := "-"
	if text, ok := verdictText[result.Verdict]; ok {
		verdict = text
	}

	tmpl := fasttemplate.New(settlementMessageTemplate, "{{", "}}")
	return tmpl.ExecuteString(map[string]interface{}{
		"stock_name":   escapeMarkdown(record.StockName),
		"stock_code":   escapeMarkdown(record.StockCode),
		"trade_type":   record.TradeType,
		"total_amount": fmt.Sprintf("%.2f", result.TotalAmount),
		"total_cost":   fmt.Sprintf("%.2f", result.TotalCost),
		"net_profit":   netProfit,
		"profit_rate":  profitRate,
		"verdict":      verdict,
	})
}
