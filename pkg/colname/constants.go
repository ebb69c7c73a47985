package colname

const (
	// DefaultMaxBytesPerColumnName 默认字节预算
	DefaultMaxBytesPerColumnName = 120

	// MinMaxBytesPerColumnName 最小字节预算，需容纳最短的生成名 " 1"
	MinMaxBytesPerColumnName = len(numberSeparator) + 1

	// DefaultNameBase 空列默认名的前缀
	DefaultNameBase = "Column"

	// numberSeparator 基础名与编号之间的分隔符
	numberSeparator = " "

	// firstDuplicateNumber 重复列名的起始编号，不会生成 "A 1"
	firstDuplicateNumber = 2
)

// 清理器使用的字节分类
const (
	asciiControlMax = 0x1F // 最后一个被移除的控制字节，DEL (0x7F) 保留

	surrogateLead    = 0xED // 编码代理项的首字节
	surrogateMinNext = 0xA0 // ED A0..BF xx 编码 U+D800..U+DFFF
	surrogateMaxNext = 0xBF
	continuationMin  = 0x80
	continuationMax  = 0xBF
	surrogateWidth   = 3
)

// replacementChar U+FFFD 的 UTF-8 编码
const replacementChar = "\uFFFD"
