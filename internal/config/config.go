package config

type Config struct {
	Telegram  TelegramConf  `json:"telegram"`
	Journal   JournalConf   `json:"journal"`
	Analytics AnalyticsConf `json:"analytics"`
}

type TelegramConf struct {
	Enabled bool   `json:"enabled"`
	Token   string `json:"token"`
	ChatID  string `json:"chat_id"`
}

type JournalConf struct {
	DefaultCommission float64 `json:"default_commission"` // 结算时未填写佣金的默认值
	DefaultTax        float64 `json:"default_tax"`        // 结算时未填写税费的默认值
}

type AnalyticsConf struct {
	SnapshotEnabled bool   `json:"snapshot_enabled"` // 是否定时保存统计快照
	SnapshotCron    string `json:"snapshot_cron"`    // cron 表达式，默认每天收盘后一次
}
