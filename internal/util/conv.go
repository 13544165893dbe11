package util

import (
	"strconv"
)

// MustParseUint 将字符串转换为无符号整数，解析失败时返回 0
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// ParseIntField 解析可选整数字段，空串或非法输入返回 nil
func ParseIntField(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

// ParseFloatField 解析可选浮点字段，空串或非法输入返回 nil
func ParseFloatField(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// StringField 空串返回 nil，否则返回指针
func StringField(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
