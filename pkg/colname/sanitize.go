package colname

import (
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// byteAction 清理器对输入开头字节序列的处理方式
type byteAction int

const (
	actionKeep    byteAction = iota // 原样复制
	actionRemove                    // 丢弃
	actionReplace                   // 写入 U+FFFD
	actionNeedMore                  // 序列可能跨越缓冲区，需要更多输入
)

// Sanitizer 移除 ASCII 控制字符并将非法 UTF-8 替换为 U+FFFD 的 transform.Transformer
//
// 编码后的 UTF-16 代理项（ED A0..BF 80..BF）整体替换为一个 U+FFFD，
// 其他非法字节逐字节替换。ASCIICleaned 和 UnicodeFixed 报告自上次 Reset
// 以来的变更。
type Sanitizer struct {
	asciiCleaned bool
	unicodeFixed bool
}

var _ transform.Transformer = (*Sanitizer)(nil)

// NewSanitizer 创建标记已清空的 Sanitizer
func NewSanitizer() *Sanitizer {
	return &Sanitizer{}
}

// ASCIICleaned 是否移除过控制字符
func (s *Sanitizer) ASCIICleaned() bool { return s.asciiCleaned }

// UnicodeFixed 是否替换过非法文本
func (s *Sanitizer) UnicodeFixed() bool { return s.unicodeFixed }

// Reset 清空标记
func (s *Sanitizer) Reset() {
	s.asciiCleaned = false
	s.unicodeFixed = false
}

// Transform 实现 transform.Transformer
func (s *Sanitizer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		action, width := classifySequence(src[nSrc:], atEOF)

		switch action {
		case actionNeedMore:
			return nDst, nSrc, transform.ErrShortSrc

		case actionRemove:
			s.asciiCleaned = true
			nSrc += width

		case actionReplace:
			if nDst+len(replacementChar) > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += copy(dst[nDst:], replacementChar)
			nSrc += width
			s.unicodeFixed = true

		case actionKeep:
			if nDst+width > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += copy(dst[nDst:], src[nSrc:nSrc+width])
			nSrc += width
		}
	}
	return nDst, nSrc, nil
}

// classifySequence 判断 p 开头序列的处理方式及其字节数
// p 不能为空
func classifySequence(p []byte, atEOF bool) (byteAction, int) {
	b := p[0]

	// 快速路径：ASCII
	if b < utf8.RuneSelf {
		if b <= asciiControlMax {
			return actionRemove, 1
		}
		return actionKeep, 1
	}

	if r, size := utf8.DecodeRune(p); r != utf8.RuneError || size > 1 {
		// 合法字符，包括原本就存在的 U+FFFD
		return actionKeep, size
	}

	if b == surrogateLead {
		switch {
		case len(p) >= surrogateWidth && isEncodedSurrogate(p):
			return actionReplace, surrogateWidth
		case !atEOF && len(p) < surrogateWidth && isSurrogatePrefix(p):
			return actionNeedMore, 0
		}
	}

	if !atEOF && !utf8.FullRune(p) {
		return actionNeedMore, 0
	}

	return actionReplace, 1
}

// isSurrogatePrefix p 是否可能是编码代理项的开头
func isSurrogatePrefix(p []byte) bool {
	if len(p) == 0 || p[0] != surrogateLead {
		return false
	}
	return len(p) == 1 || (p[1] >= surrogateMinNext && p[1] <= surrogateMaxNext)
}

// isEncodedSurrogate p 是否以完整的编码代理项开头
func isEncodedSurrogate(p []byte) bool {
	return len(p) >= surrogateWidth &&
		isSurrogatePrefix(p) &&
		p[2] >= continuationMin && p[2] <= continuationMax
}

// needsSanitizing Sanitize 是否会修改 s
func needsSanitizing(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] <= asciiControlMax {
			return true
		}
	}
	return !utf8.ValidString(s)
}

// Sanitize 移除 raw 中的 ASCII 控制字符并将非法 UTF-8 替换为 U+FFFD
//
// 返回清理后的文本以及两类修复是否发生。
// 不含控制字符的合法输入原样返回，不分配内存。
func Sanitize(raw string) (cleaned string, asciiCleaned, unicodeFixed bool) {
	if !needsSanitizing(raw) {
		return raw, false, false
	}

	s := NewSanitizer()
	// Sanitizer 在 EOF 时不会返回错误
	cleaned, _, _ = transform.String(s, raw)
	return cleaned, s.ASCIICleaned(), s.UnicodeFixed()
}
