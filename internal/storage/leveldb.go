package storage

import (
	"fmt"

	levelds "github.com/ipfs/go-ds-leveldb"
	ldbopts "github.com/syndtr/goleveldb/leveldb/opt"
)

// levelDBDatastoreConfig 保存表条目的 LevelDB 配置。
type levelDBDatastoreConfig struct {
	path        string
	compression ldbopts.Compression
}

// LevelDBDatastoreConfig 从配置映射创建 LevelDB 配置。
//
// "compression" 可选，取值 "none"、"snappy"，缺省时使用 LevelDB 默认值。
func LevelDBDatastoreConfig(params map[string]interface{}) (DatastoreConfig, error) {
	path, ok := params["path"].(string)
	if !ok {
		return nil, &ConfigError{Field: "path", Err: fmt.Errorf("missing or not a string")}
	}

	var compression ldbopts.Compression
	switch v := params["compression"]; v {
	case "none":
		compression = ldbopts.NoCompression
	case "snappy":
		compression = ldbopts.SnappyCompression
	case "", nil:
		compression = ldbopts.DefaultCompression
	default:
		return nil, &ConfigError{Field: "compression", Value: v, Err: fmt.Errorf("unrecognized value")}
	}

	return &levelDBDatastoreConfig{
		path:        path,
		compression: compression,
	}, nil
}

// DiskSpec 不包含压缩方式，修改压缩不需要重建目录。
func (cfg *levelDBDatastoreConfig) DiskSpec() DiskSpec {
	return map[string]interface{}{
		"type": "levelds",
		"path": cfg.path,
	}
}

func (cfg *levelDBDatastoreConfig) Create(path string) (Datastore, error) {
	return levelds.NewDatastore(resolvePath(path, cfg.path), &levelds.Options{
		Compression: cfg.compression,
	})
}
