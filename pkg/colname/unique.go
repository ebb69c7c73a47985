package colname

import (
	"fmt"
	"strconv"
)

// resolver 为一批列名分配唯一名称，每次调用独立创建
type resolver struct {
	maxBytes int

	// taken 已有名称加上目前已分配的名称
	taken map[string]struct{}
	// literal 已有名称加上本批所有非空的清理后名称
	// 默认名落在其中时不能保留位置编号
	literal map[string]struct{}
	// reserved literal 加上每个默认名的位置名称
	// 编号候选必须避开
	reserved map[string]struct{}
	// next 每个基础名下一个待尝试的编号
	next map[string]int
	// nextDefault 冲突默认名下一个待尝试的编号
	// 位置只增不减，可用名称只减不增，小于它的编号无需重新检查
	nextDefault int
}

func newResolver(existing []string, size, maxBytes int) *resolver {
	r := &resolver{
		maxBytes: maxBytes,
		taken:    make(map[string]struct{}, len(existing)+size),
		literal:  make(map[string]struct{}, len(existing)+size),
		reserved: make(map[string]struct{}, len(existing)+size),
		next:     make(map[string]int),
	}
	for _, name := range existing {
		r.taken[name] = struct{}{}
		r.literal[name] = struct{}{}
		r.reserved[name] = struct{}{}
	}
	return r
}

func (r *resolver) available(name string) bool {
	if _, ok := r.taken[name]; ok {
		return false
	}
	_, ok := r.reserved[name]
	return !ok
}

// keeps u 能否保留当前名称
func (r *resolver) keeps(u *UniqueName) bool {
	if _, ok := r.taken[u.Name]; ok {
		return false
	}
	if u.IsDefault {
		_, ok := r.literal[u.Name]
		return !ok
	}
	return true
}

// claim 为 u 分配最终名称
// u.Name 必须已在 reserved 中
func (r *resolver) claim(u *UniqueName, position int) error {
	if r.keeps(u) {
		r.taken[u.Name] = struct{}{}
		return nil
	}

	base, n := u.Name, r.next[u.Name]
	if u.IsDefault {
		base, n = DefaultNameBase, max(position+1, r.nextDefault)
	} else if n == 0 {
		n = firstDuplicateNumber
	}

	for ; ; n++ {
		name, truncated, err := numberedName(base, n, r.maxBytes)
		if err != nil {
			return err
		}
		if !r.available(name) {
			continue
		}

		if u.IsDefault {
			r.nextDefault = n + 1
		} else {
			r.next[base] = n + 1
		}
		r.taken[name] = struct{}{}
		u.Name = name
		u.IsNumbered = true
		u.IsTruncated = u.IsTruncated || truncated
		return nil
	}
}

// numberedName 在 base 后追加 " n"，必要时按字符边界截断 base 以适应 maxBytes
// 编号本身不会被截断
func numberedName(base string, n, maxBytes int) (string, bool, error) {
	suffix := numberSeparator + strconv.Itoa(n)
	if len(suffix) > maxBytes {
		return "", false, fmt.Errorf("%w: %d bytes cannot hold suffix %q", ErrBudgetExhausted, maxBytes, suffix)
	}

	prefix, truncated := Truncate(base, maxBytes-len(suffix))
	return prefix + suffix, truncated, nil
}

// GenUnique 清理每个原始列名，并使结果在本批内以及相对 existing 唯一
//
// 按输入顺序应用以下规则：
//
//   - 下标 i 处清理后为空的名称变为 "Column K"，K = len(existing)+i+1，
//     适配字节预算；若该名称已被占用或是其他列的原始名称，则继续尝试
//     "Column K+1"、"Column K+2" ...
//   - 既不在 existing 中也未被分配的名称保留原文
//   - 之后的重复名称变为 "Name N"，N >= 2 且取最小的可用值，
//     不会占用本批任何列的原始名称
//
// 示例：
//
//	GenUnique([]string{"A", "A", "A 2"}, DefaultSettings(), nil)
//	// 结果: "A", "A 3" (编号), "A 2"
//
// existing 按原样使用，不做清理。只会返回配置错误和 ErrBudgetExhausted，
// 后者仅在 2 字节预算下生成两位数编号时出现。
func GenUnique(raw []string, settings Settings, existing []string) ([]UniqueName, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	r := newResolver(existing, len(raw), settings.MaxBytesPerColumnName)
	offset := len(r.taken)

	ret := make([]UniqueName, len(raw))
	for i, name := range raw {
		u := uniqueFromClean(Clean(name, settings))

		if u.Name == "" {
			def, truncated, err := numberedName(DefaultNameBase, offset+i+1, settings.MaxBytesPerColumnName)
			if err != nil {
				return nil, err
			}
			u.Name = def
			u.IsDefault = true
			u.IsTruncated = u.IsTruncated || truncated
		}

		ret[i] = u
		r.reserved[u.Name] = struct{}{}
		if !u.IsDefault {
			r.literal[u.Name] = struct{}{}
		}
	}

	for i := range ret {
		if err := r.claim(&ret[i], offset+i+1); err != nil {
			return nil, err
		}
	}

	return ret, nil
}

// GenUniqueAndWarn 执行 GenUnique，返回最终名称和汇总警告
func GenUniqueAndWarn(raw []string, settings Settings, existing []string) ([]string, []Warning, error) {
	unique, err := GenUnique(raw, settings, existing)
	if err != nil {
		return nil, nil, err
	}

	names := make([]string, len(unique))
	for i, u := range unique {
		names[i] = u.Name
	}
	return names, Summarize(unique, settings), nil
}
