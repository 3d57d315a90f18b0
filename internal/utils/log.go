package utils

import "strings"

// TruncateForLog trims s and cuts it to limit runes, appending an ellipsis when
// anything was dropped. LLM prompts and replies are routinely several kilobytes,
// so every component logs previews through this helper.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
