package validation

import "unicode/utf8"

// MaxTextLength 实体字符串字段的统一上限，对应 max=250
const MaxTextLength = 250

// Truncate 截断到最多 n 个字符，与 validator 的 max 一样按 rune 计数
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for pos := range s {
		if count == n {
			return s[:pos]
		}
		count++
	}
	return s
}
