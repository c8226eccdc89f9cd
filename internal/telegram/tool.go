package telegram

import "strings"

// escapeMarkdown 转义 Markdown 格式中的特殊字符，避免消息发送失败
func escapeMarkdown(input string) string {
	replacer := strings.NewReplacer(
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
		"[", "\\[",
		"]", "\\]",
	)
	return replacer.Replace(input)
}
