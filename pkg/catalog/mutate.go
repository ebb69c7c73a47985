package catalog

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ipfs/boxo/ipld/merkledag"
	blocks "github.com/ipfs/go-block-format"
	"github.com/ipfs/go-cid"
	ipld "github.com/ipfs/go-ipld-format"

	"github.com/tragoedia0722/colnames/pkg/colname"
)

// AddColumns 清理 raw，相对 table 当前列去重后追加
// 表不存在时自动创建
func (c *Catalog) AddColumns(ctx context.Context, table string, raw []string, settings colname.Settings) (*Report, error) {
	return c.mutate(ctx, table, ModeAdd, raw, settings)
}

// SetColumns 用清理并去重后的 raw 替换 table 的列
func (c *Catalog) SetColumns(ctx context.Context, table string, raw []string, settings colname.Settings) (*Report, error) {
	return c.mutate(ctx, table, ModeSet, raw, settings)
}

func (c *Catalog) mutate(ctx context.Context, table string, mode Mode, raw []string, settings colname.Settings) (*Report, error) {
	op := string(mode)
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := c.load(ctx, op, table)
	if errors.Is(err, ErrTableNotFound) {
		e, err = &entry{}, nil
	}
	if err != nil {
		return nil, err
	}

	var existing []string
	if mode == ModeAdd {
		existing = e.Columns
	}

	names, warnings, err := colname.GenUniqueAndWarn(raw, settings, existing)
	if err != nil {
		return nil, &TableError{Op: op, Table: table, Err: err}
	}

	r := &Report{
		Table:    table,
		Mode:     mode,
		Raw:      raw,
		Names:    names,
		Warnings: warnings,
		MaxBytes: settings.MaxBytesPerColumnName,
		Time:     c.now().UTC(),
	}

	head, err := c.appendHistory(ctx, e.Head, r)
	if err != nil {
		return nil, &TableError{Op: op, Table: table, Err: err}
	}
	r.ID = head.String()

	if mode == ModeAdd {
		e.Columns = append(e.Columns, names...)
	} else {
		e.Columns = names
	}
	e.Head = r.ID

	if err = c.store(ctx, table, e); err != nil {
		return nil, &TableError{Op: op, Table: table, Err: err}
	}

	log.Infow("updated table", "table", table, "mode", mode, "columns", len(names), "warnings", len(warnings))
	for _, w := range warnings {
		log.Debugw("column name warning", "table", table, "kind", w.Kind, "count", w.Count, "first", w.FirstName)
	}

	return r, nil
}

// appendHistory 将 r 存为 raw 块，并添加链接到它和 prevHead 的历史节点
// 返回新的头节点
func (c *Catalog) appendHistory(ctx context.Context, prevHead string, r *Report) (cid.Cid, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return cid.Undef, err
	}

	sum, err := c.reportCids.Sum(data)
	if err != nil {
		return cid.Undef, err
	}
	blk, err := blocks.NewBlockWithCid(data, sum)
	if err != nil {
		return cid.Undef, err
	}
	if err = c.blockStore.Put(ctx, blk); err != nil {
		return cid.Undef, err
	}

	nd := new(merkledag.ProtoNode)
	if err = nd.SetCidBuilder(c.nodeCids); err != nil {
		return cid.Undef, err
	}
	if err = nd.AddRawLink(reportLink, &ipld.Link{Cid: sum, Size: uint64(len(data))}); err != nil {
		return cid.Undef, err
	}

	if prevHead != "" {
		prev, err := cid.Decode(prevHead)
		if err != nil {
			return cid.Undef, err
		}
		if err = nd.AddRawLink(prevLink, &ipld.Link{Cid: prev}); err != nil {
			return cid.Undef, err
		}
	}

	if err = c.dagService.Add(ctx, nd); err != nil {
		return cid.Undef, err
	}
	return nd.Cid(), nil
}
