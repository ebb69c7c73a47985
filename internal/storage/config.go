package storage

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	ds "github.com/ipfs/go-datastore"
)

// Datastore 是存储层对外暴露的 datastore，需要支持批处理。
type Datastore interface {
	ds.Batching
}

// DatastoreConfig 描述如何在某个目录下创建 datastore。
type DatastoreConfig interface {
	DiskSpec() DiskSpec
	Create(path string) (Datastore, error)
}

// ConfigFactory 从配置映射创建 DatastoreConfig。
type ConfigFactory func(map[string]interface{}) (DatastoreConfig, error)

type configRegistry struct {
	mu        sync.RWMutex
	factories map[string]ConfigFactory
}

var globalConfigRegistry = &configRegistry{
	factories: make(map[string]ConfigFactory),
}

var registryOnce sync.Once

func ensureInitialized() {
	registryOnce.Do(func() {
		globalConfigRegistry.register("mount", MountDatastoreConfig)
		globalConfigRegistry.register("measure", MeasureDatastoreConfig)
		globalConfigRegistry.register("levelds", LevelDBDatastoreConfig)
		globalConfigRegistry.register("flatfs", FlatFsDatastoreConfig)
	})
}

// RegisterDatastoreType 注册一个 datastore 类型，同名类型会被覆盖。
func RegisterDatastoreType(name string, factory ConfigFactory) {
	ensureInitialized()
	globalConfigRegistry.register(strings.ToLower(name), factory)
}

func (r *configRegistry) register(name string, factory ConfigFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

func (r *configRegistry) get(name string) ConfigFactory {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.factories[name]
}

// list 返回已注册的类型名，按字母排序。
func (r *configRegistry) list() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.factories))
	for name := range r.factories {
		types = append(types, name)
	}
	slices.Sort(types)
	return types
}

// AnyDatastoreConfig 根据 "type" 字段（不区分大小写）创建对应的配置。
func AnyDatastoreConfig(params map[string]interface{}) (DatastoreConfig, error) {
	ensureInitialized()

	datastoreType, ok := params["type"].(string)
	if !ok {
		return nil, &ConfigError{Field: "type", Value: params["type"], Err: fmt.Errorf("missing or not a string")}
	}

	datastoreType = strings.ToLower(datastoreType)

	factory := globalConfigRegistry.get(datastoreType)
	if factory == nil {
		return nil, &ConfigError{
			Field: "type",
			Value: datastoreType,
			Err:   fmt.Errorf("unknown datastore type (available: %v)", globalConfigRegistry.list()),
		}
	}

	return factory(params)
}
