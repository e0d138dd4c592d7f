package util

import (
	"strconv"
)

// ParseInt64Or 解析失败时返回默认值
func ParseInt64Or(s string, def int64) int64 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return def
	}
	return v
}
