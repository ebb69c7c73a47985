package storage

import (
	"fmt"
	"sort"

	ds "github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/mount"
)

type mountDatastoreConfig struct {
	mounts []mountItem
}

type mountItem struct {
	ds     DatastoreConfig
	prefix ds.Key
}

// MountDatastoreConfig 从配置映射创建 mount 配置。
//
// "mounts" 中每一项是一个子 datastore 配置，外加 "mountpoint" 字段。
// 挂载点按前缀倒序排列，较长的前缀优先匹配。
func MountDatastoreConfig(params map[string]interface{}) (DatastoreConfig, error) {
	var config mountDatastoreConfig

	mounts, ok := params["mounts"].([]interface{})
	if !ok {
		return nil, &ConfigError{Field: "mounts", Err: fmt.Errorf("missing or not an array")}
	}

	for _, item := range mounts {
		mountParams, ok := item.(map[string]interface{})
		if !ok {
			return nil, &ConfigError{Field: "mounts", Value: item, Err: fmt.Errorf("expected map for mountpoint")}
		}

		child, err := AnyDatastoreConfig(mountParams)
		if err != nil {
			return nil, err
		}

		prefix, ok := mountParams["mountpoint"].(string)
		if !ok {
			return nil, &ConfigError{Field: "mountpoint", Value: mountParams["mountpoint"], Err: fmt.Errorf("missing or not a string")}
		}

		config.mounts = append(config.mounts, mountItem{
			ds:     child,
			prefix: ds.NewKey(prefix),
		})
	}

	sort.Slice(config.mounts, func(i, j int) bool {
		return config.mounts[i].prefix.String() > config.mounts[j].prefix.String()
	})

	return &config, nil
}

func (cfg *mountDatastoreConfig) DiskSpec() DiskSpec {
	spec := map[string]interface{}{"type": "mount"}
	mounts := make([]interface{}, len(cfg.mounts))

	for i, m := range cfg.mounts {
		mountSpec := m.ds.DiskSpec()
		if mountSpec == nil {
			mountSpec = make(map[string]interface{})
		}

		mountSpec["mountpoint"] = m.prefix.String()
		mounts[i] = mountSpec
	}

	spec["mounts"] = mounts

	return spec
}

// Create 依次创建各挂载点的 datastore，任一失败时关闭已创建的部分。
func (cfg *mountDatastoreConfig) Create(path string) (Datastore, error) {
	mounts := make([]mount.Mount, 0, len(cfg.mounts))

	for _, m := range cfg.mounts {
		store, err := m.ds.Create(path)
		if err != nil {
			for _, created := range mounts {
				_ = created.Datastore.Close()
			}
			return nil, err
		}

		mounts = append(mounts, mount.Mount{Prefix: m.prefix, Datastore: store})
	}

	return mount.New(mounts), nil
}
