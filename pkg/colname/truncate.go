package colname

import (
	"unicode/utf8"
)

// Truncate 将 s 截断为最多 maxBytes 字节的 UTF-8，不拆分字符
//
// 返回能放下的最长前缀。预算 <= 0 或小于首字符长度时返回 ""。
// 布尔值表示是否发生截断。
//
// 示例：
//
//	Truncate("acé", 3) → ("ac", true)
//	Truncate("acé", 4) → ("acé", false)
func Truncate(s string, maxBytes int) (string, bool) {
	if len(s) <= max(maxBytes, 0) {
		return s, false
	}
	if maxBytes <= 0 {
		return "", true
	}

	end := maxBytes
	for end > 0 && !utf8.RuneStart(s[end]) {
		end--
	}
	return s[:end], true
}
