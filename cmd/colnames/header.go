package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// readHeader 返回 r 的第一条 CSV 记录
// 去除开头的 BOM 并解码 UTF-16 输入，其他字节原样传递，由清理器报告。
// 空输入没有列名。
func readHeader(r io.Reader) ([]string, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	record, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	return record, nil
}

// openInput 打开指定文件，"" 或 "-" 时返回命令的标准输入
func openInput(cmd *cobra.Command, name string) (io.ReadCloser, error) {
	if name == "" || name == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(name)
}

func readHeaderArg(cmd *cobra.Command, args []string, i int) ([]string, error) {
	var name string
	if len(args) > i {
		name = args[i]
	}

	in, err := openInput(cmd, name)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	return readHeader(in)
}
