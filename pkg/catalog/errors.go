package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrTableNotFound 表不存在或已被删除
	ErrTableNotFound = errors.New("table not found")
	// ErrInvalidTable 表名无法用作键
	ErrInvalidTable = errors.New("invalid table name")
	// ErrCorruptHistory 历史节点结构不符合预期
	ErrCorruptHistory = errors.New("corrupt history")
	// ErrClosed 目录已关闭
	ErrClosed = errors.New("catalog is closed")
)

// TableError 记录失败的操作和表
type TableError struct {
	Op    string
	Table string
	Err   error
}

// Error 实现 error 接口
func (e *TableError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Table, e.Err)
}

// Unwrap 支持 errors.Is 和 errors.As
func (e *TableError) Unwrap() error {
	return e.Err
}
