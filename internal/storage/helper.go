package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Writable 确保目录存在并且可写。
func Writable(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return &StorageError{Operation: "create directory", Path: path, Err: err}
	}

	testFile := filepath.Join(path, "._check_writable")
	f, err := os.Create(testFile)
	if err != nil {
		return &StorageError{
			Operation: "check writability",
			Path:      path,
			Err:       fmt.Errorf("cannot create test file: %w", err),
		}
	}

	defer func() {
		_ = f.Close()
		_ = os.Remove(testFile)
	}()

	if err := f.Sync(); err != nil {
		return &StorageError{
			Operation: "check writability",
			Path:      path,
			Err:       fmt.Errorf("cannot sync test file: %w", err),
		}
	}

	return nil
}

// DatastoreSpecPath 返回 root 下 datastore_spec 文件的路径。
func DatastoreSpecPath(root string) string {
	return filepath.Join(root, "datastore_spec")
}

// FileExists 报告文件是否存在且非空，空文件视为不存在。
func FileExists(filename string) bool {
	fi, err := os.Stat(filename)
	if err != nil {
		return false
	}

	return fi.Size() > 0
}

// resolvePath 在 basePath 为相对路径时将其拼接到 rootPath 下。
//
//	resolvePath("/home/user", "data") → "/home/user/data"
//	resolvePath("/home/user", "/opt/data") → "/opt/data"
func resolvePath(rootPath, basePath string) string {
	if filepath.IsAbs(basePath) {
		return basePath
	}
	return filepath.Join(rootPath, basePath)
}
