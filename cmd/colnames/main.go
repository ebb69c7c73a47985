// Command colnames 将 CSV 表头清理为唯一、限长的列名，并维护各表的列名目录
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
