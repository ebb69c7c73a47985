package colname

import (
	"fmt"

	"github.com/tragoedia0722/colnames/pkg/i18n"
)

// WarningKind 列名变更的类别
//
// 按输出顺序声明
type WarningKind int

const (
	WarningASCIICleaned WarningKind = iota // 移除了控制字符
	WarningUnicodeFixed                    // 替换了非法文本
	WarningTruncated                       // 截断到字节预算
	WarningDefaulted                       // 空名称替换为 "Column N"
	WarningNumbered                        // 重复名称改为 "Name N"

	numWarningKinds = iota
)

// 警告的消息 ID，注册在 i18n 目录中
const (
	MessageASCIICleaned = "colnames.warnings.removedControlCharactersFromColumnNames"
	MessageUnicodeFixed = "colnames.warnings.replacedInvalidUnicodeInColumnNames"
	MessageTruncated    = "colnames.warnings.truncatedColumnNames"
	MessageDefaulted    = "colnames.warnings.renamedEmptyColumnNames"
	MessageNumbered     = "colnames.warnings.renamedDuplicateColumnNames"
)

var warningKindNames = [numWarningKinds]string{
	WarningASCIICleaned: "ascii-cleaned",
	WarningUnicodeFixed: "unicode-fixed",
	WarningTruncated:    "truncated",
	WarningDefaulted:    "defaulted",
	WarningNumbered:     "numbered",
}

var warningMessageIDs = [numWarningKinds]string{
	WarningASCIICleaned: MessageASCIICleaned,
	WarningUnicodeFixed: MessageUnicodeFixed,
	WarningTruncated:    MessageTruncated,
	WarningDefaulted:    MessageDefaulted,
	WarningNumbered:     MessageNumbered,
}

func (k WarningKind) valid() bool {
	return k >= 0 && k < numWarningKinds
}

// String 返回类别的稳定名称，例如 "truncated"
func (k WarningKind) String() string {
	if !k.valid() {
		return "unknown"
	}
	return warningKindNames[k]
}

// MessageID 返回类别对应的 i18n 消息 ID
func (k WarningKind) MessageID() string {
	if !k.valid() {
		return ""
	}
	return warningMessageIDs[k]
}

// MarshalText 编码为 String 形式
func (k WarningKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText 从 String 形式解码
func (k *WarningKind) UnmarshalText(text []byte) error {
	for i, name := range warningKindNames {
		if name == string(text) {
			*k = WarningKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown warning kind %q", text)
}

// Warning 整批中某一类变更的汇总
type Warning struct {
	Kind      WarningKind `json:"kind"`
	Count     int         `json:"count"`      // 受影响的列数
	FirstName string      `json:"first_name"` // 第一个受影响列的最终名称
	MaxBytes  int         `json:"max_bytes,omitempty"`
}

// Message 返回可本地化的警告消息
func (w Warning) Message() i18n.Message {
	args := map[string]any{
		"n_columns":   w.Count,
		"column_name": w.FirstName,
	}
	if w.Kind == WarningTruncated {
		args["n_bytes"] = w.MaxBytes
	}
	return i18n.Trans(w.Kind.MessageID(), args)
}

// Summarize 扫描一遍 names，为至少影响一列的每类变更返回一条 Warning
// 按 WarningKind 顺序排列
func Summarize(names []UniqueName, settings Settings) []Warning {
	var (
		counts [numWarningKinds]int
		first  [numWarningKinds]string
	)

	for _, u := range names {
		for kind, hit := range u.flags() {
			if !hit {
				continue
			}
			if counts[kind] == 0 {
				first[kind] = u.Name
			}
			counts[kind]++
		}
	}

	var warnings []Warning
	for kind := WarningKind(0); kind < numWarningKinds; kind++ {
		if counts[kind] == 0 {
			continue
		}
		w := Warning{
			Kind:      kind,
			Count:     counts[kind],
			FirstName: first[kind],
		}
		if kind == WarningTruncated {
			w.MaxBytes = settings.MaxBytesPerColumnName
		}
		warnings = append(warnings, w)
	}
	return warnings
}
