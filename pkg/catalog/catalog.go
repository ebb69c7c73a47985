// Package catalog 持久化各表的列名，使后续批次可以相对已有列去重
//
// 表条目以 JSON 存储在 LevelDB 的 /tables 下。每次变更还会写入一个报告块
// 和一个 dag-pb 历史节点，节点链接到报告和上一个节点，
// 因此可以列出并校验表的历史。
//
// 基本用法：
//
//	c, err := catalog.Open("~/.colnames")
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	names, warnings, err := c.AddColumns(ctx, "orders", header, colname.DefaultSettings())
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ipfs/boxo/blockservice"
	"github.com/ipfs/boxo/blockstore"
	"github.com/ipfs/boxo/ipld/merkledag"
	"github.com/ipfs/go-cid"
	ds "github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/query"
	ipld "github.com/ipfs/go-ipld-format"
	logging "github.com/ipfs/go-log/v2"
	"github.com/multiformats/go-multicodec"
	mh "github.com/multiformats/go-multihash"

	"github.com/tragoedia0722/colnames/internal/storage"
)

var log = logging.Logger("colnames/catalog")

var tablesPrefix = ds.NewKey("/tables")

// Catalog 表列名目录，并发安全
type Catalog struct {
	// mu 串行化变更，保证读取、去重、写入整体原子
	mu         sync.Mutex
	storage    *storage.Storage
	blockStore blockstore.Blockstore
	dagService ipld.DAGService
	reportCids cid.Builder
	nodeCids   cid.Builder
	now        func() time.Time
}

// entry 每个表存储的 JSON 值
type entry struct {
	Columns []string `json:"columns"`
	Head    string   `json:"head,omitempty"`
}

// Open 打开或创建 path 下的目录
func Open(path string) (*Catalog, error) {
	s, err := storage.NewStorage(path)
	if err != nil {
		return nil, err
	}

	bs := blockstore.NewBlockstore(s.Datastore())

	return &Catalog{
		storage:    s,
		blockStore: bs,
		dagService: merkledag.NewDAGService(blockservice.New(bs, nil)),
		reportCids: cid.V1Builder{
			Codec:    uint64(multicodec.Raw),
			MhType:   mh.SHA2_256,
			MhLength: -1,
		},
		nodeCids: cid.V1Builder{
			Codec:    uint64(multicodec.DagPb),
			MhType:   mh.SHA2_256,
			MhLength: -1,
		},
		now: time.Now,
	}, nil
}

// Close 关闭目录并释放存储锁
func (c *Catalog) Close() error {
	return c.storage.Close()
}

// Destroy 关闭目录并删除其所在路径
func (c *Catalog) Destroy() error {
	return c.storage.Destroy()
}

// Path 返回目录的存储路径
func (c *Catalog) Path() string {
	return c.storage.Path()
}

// Usage 返回目录占用的磁盘字节数
func (c *Catalog) Usage(ctx context.Context) (uint64, error) {
	return c.storage.GetStorageUsage(ctx)
}

// Columns 返回 table 当前的列名
func (c *Catalog) Columns(ctx context.Context, table string) ([]string, error) {
	e, err := c.load(ctx, "columns", table)
	if err != nil {
		return nil, err
	}
	return e.Columns, nil
}

// Tables 返回所有表名，已排序
func (c *Catalog) Tables(ctx context.Context) ([]string, error) {
	d := c.storage.Datastore()
	if d == nil {
		return nil, ErrClosed
	}

	results, err := d.Query(ctx, query.Query{Prefix: tablesPrefix.String(), KeysOnly: true})
	if err != nil {
		return nil, err
	}
	all, err := results.Rest()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(all))
	for _, r := range all {
		names = append(names, ds.RawKey(r.Key).BaseNamespace())
	}
	slices.Sort(names)
	return names, nil
}

// Drop 删除 table，历史块保留在 blockstore 中
func (c *Catalog) Drop(ctx context.Context, table string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.load(ctx, "drop", table); err != nil {
		return err
	}

	d := c.storage.Datastore()
	if d == nil {
		return ErrClosed
	}
	if err := d.Delete(ctx, tableKey(table)); err != nil {
		return &TableError{Op: "drop", Table: table, Err: err}
	}

	log.Infow("dropped table", "table", table)
	return nil
}

// ValidTable name 能否用作表名
func ValidTable(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsRune(name, '/')
}

func tableKey(table string) ds.Key {
	return tablesPrefix.ChildString(table)
}

func (c *Catalog) load(ctx context.Context, op, table string) (*entry, error) {
	if !ValidTable(table) {
		return nil, &TableError{Op: op, Table: table, Err: ErrInvalidTable}
	}

	d := c.storage.Datastore()
	if d == nil {
		return nil, ErrClosed
	}

	b, err := d.Get(ctx, tableKey(table))
	if errors.Is(err, ds.ErrNotFound) {
		return nil, &TableError{Op: op, Table: table, Err: ErrTableNotFound}
	}
	if err != nil {
		return nil, &TableError{Op: op, Table: table, Err: err}
	}

	var e entry
	if err = json.Unmarshal(b, &e); err != nil {
		return nil, &TableError{Op: op, Table: table, Err: err}
	}
	return &e, nil
}

func (c *Catalog) store(ctx context.Context, table string, e *entry) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}

	d := c.storage.Datastore()
	if d == nil {
		return ErrClosed
	}
	return d.Put(ctx, tableKey(table), b)
}
