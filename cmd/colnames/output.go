package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tragoedia0722/colnames/pkg/colname"
	"github.com/tragoedia0722/colnames/pkg/i18n"
)

type warningOutput struct {
	colname.Warning
	Message i18n.Message `json:"message"`
	Text    string       `json:"text"`
}

type namesOutput struct {
	Table    string          `json:"table,omitempty"`
	Names    []string        `json:"names"`
	Warnings []warningOutput `json:"warnings"`
}

func (a *app) newNamesOutput(table string, names []string, warnings []colname.Warning) namesOutput {
	out := namesOutput{
		Table:    table,
		Names:    names,
		Warnings: make([]warningOutput, len(warnings)),
	}
	if out.Names == nil {
		out.Names = []string{}
	}
	for i, w := range warnings {
		m := w.Message()
		out.Warnings[i] = warningOutput{Warning: w, Message: m, Text: i18n.Render(a.tag, m)}
	}
	return out
}

// printNames 每行一个名称写入 stdout，渲染后的警告写入 stderr
// JSON 模式下全部作为一个文档写入 stdout
func (a *app) printNames(cmd *cobra.Command, out namesOutput) error {
	if a.asJSON {
		return writeJSON(cmd.OutOrStdout(), out)
	}

	for _, name := range out.Names {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
			return err
		}
	}
	for _, w := range out.Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w.Text)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
