package xe

import "github.com/go-orz/orz"

var (
	ErrInvalidParams          = orz.NewError(10400, "参数无效")
	ErrRecordNotFound         = orz.NewError(10404, "交易记录不存在")
	ErrInvalidSettlementInput = orz.NewError(10001, "结算输入无效：成交价必须大于0，数量不能为负")
	ErrAlreadySettled         = orz.NewError(10002, "该交易已结算，不能重复结算")
	ErrInvalidTradeType       = orz.NewError(10003, "交易方向无效，仅支持 buy/sell")
)
