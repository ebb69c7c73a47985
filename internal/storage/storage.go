package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	ds "github.com/ipfs/go-datastore"
	measure "github.com/ipfs/go-ds-measure"
	logging "github.com/ipfs/go-log/v2"
	"github.com/mitchellh/go-homedir"
	"github.com/rogpeppe/go-internal/lockedfile"
)

var log = logging.Logger("colnames/storage")

// LockFile 是存储目录中的锁文件名，同一目录只允许一个进程打开。
const LockFile = ".colnames.lock"

// MetricsPrefix 是 measure 包装 datastore 时使用的指标前缀。
const MetricsPrefix = "colnames.storage.datastore"

// ErrClosed 表示存储已经关闭。
var ErrClosed = errors.New("storage is closed")

// Storage 管理一个目录下的 datastore、其磁盘规范和锁文件。
type Storage struct {
	locker   sync.Mutex
	closed   atomic.Bool
	path     string
	lockFile *lockedfile.File
	ds       Datastore
}

// Path 返回展开后的存储目录。
func (r *Storage) Path() string {
	return r.path
}

// Datastore 返回底层 datastore，关闭后返回 nil。
func (r *Storage) Datastore() Datastore {
	r.locker.Lock()
	defer r.locker.Unlock()

	if r.closed.Load() {
		return nil
	}
	return r.ds
}

// GetStorageUsage 返回 datastore 的磁盘占用（字节）。
func (r *Storage) GetStorageUsage(ctx context.Context) (uint64, error) {
	d := r.Datastore()
	if d == nil {
		return 0, ErrClosed
	}
	return ds.DiskUsage(ctx, d)
}

// Close 关闭 datastore 并释放锁文件，可重复调用。
func (r *Storage) Close() error {
	r.locker.Lock()
	defer r.locker.Unlock()

	return r.closeLocked()
}

func (r *Storage) closeLocked() error {
	if r.closed.Load() {
		return nil
	}

	var errs []error

	if err := r.ds.Close(); err != nil {
		errs = append(errs, &StorageError{Operation: "close datastore", Path: r.path, Err: err})
	}

	r.closed.Store(true)

	if r.lockFile != nil {
		lockPath := r.lockFile.Name()
		if err := r.lockFile.Close(); err != nil {
			errs = append(errs, &LockError{Path: lockPath, Err: err})
		}
		if err := os.Remove(lockPath); err != nil && !os.IsNotExist(err) {
			errs = append(errs, &LockError{Path: lockPath, Err: err})
		}
	}

	log.Debugf("closed storage at %s", r.path)

	return errors.Join(errs...)
}

// Destroy 关闭存储并删除整个目录。
func (r *Storage) Destroy() error {
	r.locker.Lock()
	defer r.locker.Unlock()

	if err := r.closeLocked(); err != nil {
		return err
	}

	log.Infof("removing storage at %s", r.path)
	if err := os.RemoveAll(r.path); err != nil {
		return &StorageError{Operation: "destroy", Path: r.path, Err: err}
	}
	return nil
}

// NewStorage 打开 path 下的存储，不存在时按 DefaultDiskSpec 初始化。
//
// path 支持 "~" 前缀。
func NewStorage(path string) (*Storage, error) {
	r, err := newStorage(path)
	if err != nil {
		return nil, err
	}

	if err = Writable(r.path); err != nil {
		return nil, err
	}

	if err = initSpec(r.path, DefaultDiskSpec()); err != nil {
		return nil, err
	}

	if err = r.open(); err != nil {
		return nil, err
	}

	log.Debugf("opened storage at %s", r.path)
	return r, nil
}

func initSpec(path string, conf map[string]interface{}) error {
	specPath := DatastoreSpecPath(path)
	if FileExists(specPath) {
		return nil
	}

	dsc, err := AnyDatastoreConfig(conf)
	if err != nil {
		return &ConfigError{Field: "datastore", Err: err}
	}

	if err = os.WriteFile(specPath, dsc.DiskSpec().Bytes(), 0o600); err != nil {
		return &StorageError{Operation: "write spec", Path: specPath, Err: err}
	}
	return nil
}

func (r *Storage) open() error {
	r.locker.Lock()
	defer r.locker.Unlock()

	lockPath := filepath.Join(r.path, LockFile)

	// lockedfile.Create 会阻塞直到拿到写锁。
	lockFile, err := lockedfile.Create(lockPath)
	if err != nil {
		return &LockError{Path: lockPath, Err: err}
	}

	keepLock := false
	defer func() {
		if !keepLock {
			_ = lockFile.Close()
			_ = os.Remove(lockPath)
		}
	}()

	if _, err = lockFile.WriteString(strconv.Itoa(os.Getpid())); err != nil {
		return &LockError{Path: lockPath, Err: err}
	}

	if err = r.openDatastore(); err != nil {
		return err
	}

	r.lockFile = lockFile
	keepLock = true
	return nil
}

func newStorage(path string) (*Storage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &InvalidPathError{Path: path, Reason: "no path provided"}
	}

	expPath, err := homedir.Expand(filepath.Clean(path))
	if err != nil {
		return nil, &InvalidPathError{Path: path, Reason: err.Error()}
	}

	return &Storage{path: expPath}, nil
}

func (r *Storage) openDatastore() error {
	dsc, err := AnyDatastoreConfig(DefaultDiskSpec())
	if err != nil {
		return &ConfigError{Field: "datastore", Err: err}
	}
	spec := dsc.DiskSpec()

	oldSpec, err := r.readSpec()
	if err != nil {
		return &StorageError{Operation: "read spec", Path: r.path, Err: err}
	}

	if oldSpec != spec.String() {
		return &ConfigError{
			Field: "datastore_spec",
			Value: oldSpec,
			Err:   fmt.Errorf("does not match expected %s", spec.String()),
		}
	}

	d, err := dsc.Create(r.path)
	if err != nil {
		return &StorageError{Operation: "open datastore", Path: r.path, Err: err}
	}

	r.ds = measure.New(MetricsPrefix, d)
	return nil
}

func (r *Storage) readSpec() (string, error) {
	b, err := os.ReadFile(DatastoreSpecPath(r.path))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(b)), nil
}
