package storage

import (
	"errors"
	"strings"
	"testing"
)

func TestAnyDatastoreConfig(t *testing.T) {
	tests := []struct {
		name      string
		params    map[string]interface{}
		wantField string
	}{
		{
			name:      "missing type",
			params:    map[string]interface{}{},
			wantField: "type",
		},
		{
			name:      "unknown type",
			params:    map[string]interface{}{"type": "badger"},
			wantField: "type",
		},
		{
			name:      "leveldb without path",
			params:    map[string]interface{}{"type": "levelds"},
			wantField: "path",
		},
		{
			name:      "leveldb bad compression",
			params:    map[string]interface{}{"type": "levelds", "path": "d", "compression": "zstd"},
			wantField: "compression",
		},
		{
			name:      "flatfs bad shard",
			params:    map[string]interface{}{"type": "flatfs", "path": "b", "shardFunc": "nope", "sync": true},
			wantField: "shardFunc",
		},
		{
			name:      "flatfs without sync",
			params:    map[string]interface{}{"type": "flatfs", "path": "b", "shardFunc": "/repo/flatfs/shard/v1/next-to-last/2"},
			wantField: "sync",
		},
		{
			name:      "measure without prefix",
			params:    map[string]interface{}{"type": "measure", "child": map[string]interface{}{"type": "levelds", "path": "d"}},
			wantField: "prefix",
		},
		{
			name:      "mount without mountpoint",
			params:    map[string]interface{}{"type": "mount", "mounts": []interface{}{map[string]interface{}{"type": "levelds", "path": "d"}}},
			wantField: "mountpoint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AnyDatastoreConfig(tt.params)
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.wantField)
			}
		})
	}
}

func TestAnyDatastoreConfig_CaseInsensitive(t *testing.T) {
	for _, typ := range []string{"levelds", "LevelDS", "LEVELDS"} {
		if _, err := AnyDatastoreConfig(map[string]interface{}{"type": typ, "path": "d"}); err != nil {
			t.Errorf("AnyDatastoreConfig(%q) failed: %v", typ, err)
		}
	}
}

func TestDefaultDiskSpec(t *testing.T) {
	dsc, err := AnyDatastoreConfig(DefaultDiskSpec())
	if err != nil {
		t.Fatalf("AnyDatastoreConfig failed: %v", err)
	}

	spec := dsc.DiskSpec().String()
	want := `{"mounts":[{"mountpoint":"/blocks","path":"blocks","shardFunc":"/repo/flatfs/shard/v1/next-to-last/2","type":"flatfs"},{"mountpoint":"/","path":"datastore","type":"levelds"}],"type":"mount"}`
	if spec != want {
		t.Errorf("DiskSpec = %s\nwant %s", spec, want)
	}
}

func TestRegisterDatastoreType(t *testing.T) {
	called := false
	RegisterDatastoreType("Memory", func(params map[string]interface{}) (DatastoreConfig, error) {
		called = true
		return LevelDBDatastoreConfig(map[string]interface{}{"path": "mem"})
	})

	if _, err := AnyDatastoreConfig(map[string]interface{}{"type": "memory"}); err != nil {
		t.Fatalf("AnyDatastoreConfig failed: %v", err)
	}
	if !called {
		t.Error("registered factory was not used")
	}

	_, err := AnyDatastoreConfig(map[string]interface{}{"type": "nope"})
	if err == nil || !strings.Contains(err.Error(), "memory") {
		t.Errorf("error should list registered types, got %v", err)
	}
}

func TestResolvePath(t *testing.T) {
	tests := []struct {
		root, base, want string
	}{
		{"/home/user", "data", "/home/user/data"},
		{"/home/user", "/opt/data", "/opt/data"},
		{"/home/user", "a/../b", "/home/user/b"},
	}
	for _, tt := range tests {
		if got := resolvePath(tt.root, tt.base); got != tt.want {
			t.Errorf("resolvePath(%q, %q) = %q, want %q", tt.root, tt.base, got, tt.want)
		}
	}
}

func TestErrorUnwrap(t *testing.T) {
	base := errors.New("boom")
	for _, err := range []error{
		&StorageError{Operation: "op", Path: "/p", Err: base},
		&ConfigError{Field: "f", Err: base},
		&LockError{Path: "/p", Err: base},
	} {
		if !errors.Is(err, base) {
			t.Errorf("%T does not unwrap", err)
		}
		if !strings.Contains(err.Error(), "boom") {
			t.Errorf("%T message %q lacks cause", err, err.Error())
		}
	}

	if got := (&StorageError{Operation: "op", Err: base}).Error(); got != "op failed: boom" {
		t.Errorf("Error() = %q", got)
	}
}
