package parser

import (
	"strconv"
	"strings"
)

// SafeString 单元格转字符串，去除首尾空白
func SafeString(v string) string {
	return strings.TrimSpace(v)
}

// SafeInt 单元格转整数：浮点向零截断，无法解析时返回 0
// "3.7" -> 3, "12" -> 12, "abc"/"" -> 0
func SafeInt(v string) int {
	s := strings.TrimSpace(v)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(f)
}

// normalizeIDLimit 数值归一的安全上界，超出 int64 精确范围的值不归一
const normalizeIDLimit = float64(1 << 62)

// NormalizeNumericID 把数值形式的货品ID规范成整数字符串
// "123.0" / "123" / "1.23e2" 都归一为 "123"；非数值或超出整数范围返回 false
func NormalizeNumericID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", false
	}
	if f >= normalizeIDLimit || f <= -normalizeIDLimit {
		return "", false
	}
	return strconv.FormatInt(int64(f), 10), true
}

// ContainsCJK 是否包含中日韩统一表意文字（基本区）
func ContainsCJK(s string) bool {
	for _, r := range s {
		if r >= 0x4e00 && r <= 0x9fff {
			return true
		}
	}
	return false
}

// ContainsAny 检查字符串是否包含任意一个关键词
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
