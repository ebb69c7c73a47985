// Package i18n 提供可本地化消息
//
// 库代码只返回 Message（消息 ID 加命名参数），不自行格式化文本。
// Render 根据已注册的消息目录将 Message 渲染为文本。
//
// 基本用法：
//
//	i18n.MustRegister(language.English, "app.hello", []string{"name"}, "Hello, %[1]s!")
//
//	text := i18n.Render(language.English, i18n.Trans("app.hello", map[string]any{"name": "Ada"}))
//	// 结果: "Hello, Ada!"
package i18n

// SourceLibrary 标记由本模块产生的消息，区别于调用方自己的消息
const SourceLibrary = "colnames"

// Message 交由调用方翻译的消息
type Message struct {
	ID        string         `json:"id"`
	Arguments map[string]any `json:"arguments,omitempty"`
	Source    string         `json:"source"`
}

// Trans 构造本库的 Message
//
// 示例：
//
//	i18n.Trans("colnames.warnings.truncatedColumnNames", map[string]any{
//	    "n_columns":   2,
//	    "column_name": "ab 2",
//	    "n_bytes":     4,
//	})
func Trans(id string, args map[string]any) Message {
	return Message{ID: id, Arguments: args, Source: SourceLibrary}
}
