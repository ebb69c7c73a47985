package storage

import (
	"fmt"

	flatfs "github.com/ipfs/go-ds-flatfs"
)

// flatFsDatastoreConfig 保存报告块的 FlatFS 配置。
type flatFsDatastoreConfig struct {
	path     string
	shardFun *flatfs.ShardIdV1
	sync     bool
}

func (cfg *flatFsDatastoreConfig) DiskSpec() DiskSpec {
	return map[string]interface{}{
		"type":      "flatfs",
		"path":      cfg.path,
		"shardFunc": cfg.shardFun.String(),
	}
}

// Create 在 path 下（cfg.path 为相对路径时）创建或打开 FlatFS。
func (cfg *flatFsDatastoreConfig) Create(path string) (Datastore, error) {
	return flatfs.CreateOrOpen(resolvePath(path, cfg.path), cfg.shardFun, cfg.sync)
}

// FlatFsDatastoreConfig 从配置映射创建 FlatFS 配置。
//
// 需要字段 "path" (string)、"shardFunc" (string) 和 "sync" (bool)。
func FlatFsDatastoreConfig(params map[string]interface{}) (DatastoreConfig, error) {
	path, ok := params["path"].(string)
	if !ok {
		return nil, &ConfigError{Field: "path", Err: fmt.Errorf("missing or not a string")}
	}

	shardFunc, ok := params["shardFunc"].(string)
	if !ok {
		return nil, &ConfigError{Field: "shardFunc", Err: fmt.Errorf("missing or not a string")}
	}

	shardFun, err := flatfs.ParseShardFunc(shardFunc)
	if err != nil {
		return nil, &ConfigError{Field: "shardFunc", Value: shardFunc, Err: err}
	}

	sync, ok := params["sync"].(bool)
	if !ok {
		return nil, &ConfigError{Field: "sync", Err: fmt.Errorf("missing or not a boolean")}
	}

	return &flatFsDatastoreConfig{
		path:     path,
		shardFun: shardFun,
		sync:     sync,
	}, nil
}
