package storage

import (
	"fmt"

	measure "github.com/ipfs/go-ds-measure"
)

// measureDatastoreConfig 用 go-ds-measure 包装子 datastore，按 prefix 导出指标。
type measureDatastoreConfig struct {
	child  DatastoreConfig
	prefix string
}

// MeasureDatastoreConfig 从配置映射创建 measure 配置，需要 "child" 和 "prefix"。
func MeasureDatastoreConfig(params map[string]interface{}) (DatastoreConfig, error) {
	childField, ok := params["child"].(map[string]interface{})
	if !ok {
		return nil, &ConfigError{Field: "child", Err: fmt.Errorf("missing or not a map")}
	}

	child, err := AnyDatastoreConfig(childField)
	if err != nil {
		return nil, err
	}

	prefix, ok := params["prefix"].(string)
	if !ok || prefix == "" {
		return nil, &ConfigError{Field: "prefix", Value: params["prefix"], Err: fmt.Errorf("missing or not a string")}
	}

	return &measureDatastoreConfig{child: child, prefix: prefix}, nil
}

// DiskSpec 与子配置相同，指标前缀不影响磁盘布局。
func (c *measureDatastoreConfig) DiskSpec() DiskSpec {
	return c.child.DiskSpec()
}

func (c *measureDatastoreConfig) Create(path string) (Datastore, error) {
	child, err := c.child.Create(path)
	if err != nil {
		return nil, err
	}

	return measure.New(c.prefix, child), nil
}
