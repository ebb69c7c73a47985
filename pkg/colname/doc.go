// Package colname 提供列名清理和去重功能
//
// 本包用于处理表头（通常是 CSV 的第一行）中的原始列名，使其成为合法、
// 非空、不超过字节预算且在整批中唯一的名称。
//
// 主要功能：
//
//   - 移除 ASCII 控制字符（0x00-0x1F），DEL（0x7F）保留
//   - 将非法 UTF-8（包括编码后的孤立代理项）替换为 U+FFFD
//   - 按字节预算截断，不会拆分多字节字符
//   - 为空列名生成 "Column N" 默认名
//   - 为重复列名追加编号 "Name 2"、"Name 3" ...，不会占用其他列的原始名称
//   - 将每列的变更标记汇总为每类一条警告
//
// 基本用法：
//
//	import "github.com/tragoedia0722/colnames/pkg/colname"
//
//	settings, err := colname.NewSettings(120)
//	if err != nil {
//	    return err
//	}
//	names, warnings, err := colname.GenUniqueAndWarn(header, settings, nil)
//	// header: ["A", "A", "A 2", ""]
//	// 结果:   ["A", "A 3", "A 2", "Column 4"]
//
//	cleaned := colname.Clean("ab\ncd", settings)
//	// 结果: "abcd" (IsASCIICleaned)
//
// 字节预算：
//
// Settings.MaxBytesPerColumnName 限制每个结果的 UTF-8 长度，包括默认名和
// 编号名。预算至少为 2 字节（可容纳 " 1"）。编号后缀放不下时截断基础名，
// 编号本身不会被截断。
//
// 并发：
//
//   - 所有函数都是纯函数：无 I/O，无共享状态
//   - 可以并发调用，只要不同时修改传入的切片
//
// 测试：
//
// 运行测试：
//
//	go test ./pkg/colname/... -v
//
// 运行基准测试：
//
//	go test ./pkg/colname/... -bench=. -benchmem
package colname
