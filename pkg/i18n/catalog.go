package i18n

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// ErrEmptyID 注册消息时 ID 为空
var ErrEmptyID = errors.New("message id is empty")

// entry 记录消息命名参数的位置顺序
type entry struct {
	args []string
}

// registry 消息 ID 到目录条目的映射
type registry struct {
	mu      sync.RWMutex
	entries map[string]entry
	builder *catalog.Builder
}

var globalRegistry = &registry{
	entries: make(map[string]entry),
	builder: catalog.NewBuilder(catalog.Fallback(language.English)),
}

// Register 向目录添加消息
//
// args 按格式串引用顺序列出命名参数（%[1]v 对应 args[0]）。
// text 为格式字符串或 catalog.Message（如 plural.Selectf）。
// 重复注册同一 ID 会替换 tag 对应的文本。
func Register(tag language.Tag, id string, args []string, text any) error {
	if id == "" {
		return ErrEmptyID
	}

	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()

	var err error
	switch t := text.(type) {
	case string:
		err = globalRegistry.builder.SetString(tag, id, t)
	case catalog.Message:
		err = globalRegistry.builder.Set(tag, id, t)
	default:
		return fmt.Errorf("message %q: unsupported text type %T", id, text)
	}
	if err != nil {
		return fmt.Errorf("message %q: %w", id, err)
	}

	globalRegistry.entries[id] = entry{args: slices.Clone(args)}
	return nil
}

// MustRegister 与 Register 相同，出错时 panic
// 用于包初始化时注册常量消息
func MustRegister(tag language.Tag, id string, args []string, text any) {
	if err := Register(tag, id, args, text); err != nil {
		panic(err)
	}
}

func (r *registry) lookup(id string) (entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	return e, ok
}

// Render 按 tag 格式化 m，找不到翻译时回退到英文
//
// 未注册的 ID 渲染为 ID 加按名称排序的参数
func Render(tag language.Tag, m Message) string {
	e, ok := globalRegistry.lookup(m.ID)
	if !ok {
		return fallback(m)
	}

	args := make([]any, len(e.args))
	for i, name := range e.args {
		args[i] = m.Arguments[name]
	}

	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	p := message.NewPrinter(tag, message.Catalog(globalRegistry.builder))
	return p.Sprintf(m.ID, args...)
}

func fallback(m Message) string {
	if len(m.Arguments) == 0 {
		return m.ID
	}

	var b strings.Builder
	b.WriteString(m.ID)
	for _, name := range slices.Sorted(maps.Keys(m.Arguments)) {
		fmt.Fprintf(&b, " %s=%v", name, m.Arguments[name])
	}
	return b.String()
}
