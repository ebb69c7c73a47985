package colname

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMaxBytes 字节预算小于 MinMaxBytesPerColumnName
	ErrInvalidMaxBytes = errors.New("max bytes per column name must be at least 2")

	// ErrBudgetExhausted 生成名所需的 " N" 后缀超过字节预算
	// 例如 2 字节预算下的第十个重复列名
	ErrBudgetExhausted = errors.New("byte budget too small to number column names")
)

// SettingsError 配置字段错误
type SettingsError struct {
	// Field 字段名
	Field string
	// Value 字段值
	Value int
	// Err 底层错误
	Err error
}

// Error 实现 error 接口
func (e *SettingsError) Error() string {
	return fmt.Sprintf("setting '%s' (value: %d): %v", e.Field, e.Value, e.Err)
}

// Unwrap 支持 errors.Is 和 errors.As
func (e *SettingsError) Unwrap() error {
	return e.Err
}
