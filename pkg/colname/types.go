package colname

// CleanName 单个原始列名的清理结果
//
// 值类型：文本和标记都相同时可以直接用 == 比较。
type CleanName struct {
	Name           string // 清理并截断后的文本，可能为空
	IsASCIICleaned bool   // 移除了控制字符
	IsUnicodeFixed bool   // 非法文本被替换为 U+FFFD
	IsTruncated    bool   // 为适应字节预算被截断
}

// UniqueName 整批去重后的列名
type UniqueName struct {
	Name           string
	IsASCIICleaned bool
	IsUnicodeFixed bool
	IsTruncated    bool
	IsDefault      bool // 清理后为空，生成了 "Column N"
	IsNumbered     bool // 为避免冲突追加了 " N" 后缀
}

// flags 按警告输出顺序返回变更标记
func (u UniqueName) flags() [numWarningKinds]bool {
	return [numWarningKinds]bool{
		WarningASCIICleaned: u.IsASCIICleaned,
		WarningUnicodeFixed: u.IsUnicodeFixed,
		WarningTruncated:    u.IsTruncated,
		WarningDefaulted:    u.IsDefault,
		WarningNumbered:     u.IsNumbered,
	}
}

func uniqueFromClean(c CleanName) UniqueName {
	return UniqueName{
		Name:           c.Name,
		IsASCIICleaned: c.IsASCIICleaned,
		IsUnicodeFixed: c.IsUnicodeFixed,
		IsTruncated:    c.IsTruncated,
	}
}
