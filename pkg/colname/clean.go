package colname

// Clean 先清理 raw，再截断到 settings.MaxBytesPerColumnName
//
// 截断作用于清理后的文本：移除控制字符会缩短名称，
// 替换字符 U+FFFD 固定占 3 字节。
func Clean(raw string, settings Settings) CleanName {
	sanitized, asciiCleaned, unicodeFixed := Sanitize(raw)
	name, truncated := Truncate(sanitized, settings.MaxBytesPerColumnName)

	return CleanName{
		Name:           name,
		IsASCIICleaned: asciiCleaned,
		IsUnicodeFixed: unicodeFixed,
		IsTruncated:    truncated,
	}
}
