// Package storage 提供 colnames 目录的持久化层。
//
// 一个存储目录包含：
//   - datastore_spec: 创建时写入的磁盘规范，之后每次打开都会校验
//   - blocks/: FlatFS，保存按内容寻址的列名报告块
//   - datastore/: LevelDB，保存表条目等元数据
//
// 基本使用：
//
//	s, err := storage.NewStorage("~/.colnames")
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	d := s.Datastore()
package storage

import (
	"bytes"
	"encoding/json"
)

// DiskSpec 是存储配置的磁盘规范，序列化后写入 datastore_spec。
type DiskSpec map[string]interface{}

// DefaultDiskSpec 返回默认的存储配置：
//   - /blocks: FlatFS，保存报告块
//   - /: LevelDB，保存表条目
func DefaultDiskSpec() DiskSpec {
	return map[string]interface{}{
		"type": "mount",
		"mounts": []interface{}{
			map[string]interface{}{
				"mountpoint": "/blocks",
				"type":       "measure",
				"prefix":     "colnames.blocks",
				"child": map[string]interface{}{
					"type":      "flatfs",
					"path":      "blocks",
					"sync":      true,
					"shardFunc": "/repo/flatfs/shard/v1/next-to-last/2",
				},
			},
			map[string]interface{}{
				"mountpoint": "/",
				"type":       "measure",
				"prefix":     "colnames.tables",
				"child": map[string]interface{}{
					"type":        "levelds",
					"path":        "datastore",
					"compression": "none",
				},
			},
		},
	}
}

// Bytes 将 DiskSpec 序列化为 JSON。
//
// DiskSpec 只包含基本类型，序列化失败说明调用方构造有误，直接 panic。
func (s DiskSpec) Bytes() []byte {
	b, err := json.Marshal(s)
	if err != nil {
		panic(err)
	}

	return bytes.TrimSpace(b)
}

func (s DiskSpec) String() string {
	return string(s.Bytes())
}
