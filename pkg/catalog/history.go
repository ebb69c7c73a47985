package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ipfs/boxo/ipld/merkledag"
	"github.com/ipfs/go-cid"

	"github.com/tragoedia0722/colnames/pkg/colname"
)

// Mode 变更表列的方式
type Mode string

const (
	ModeAdd Mode = "add"
	ModeSet Mode = "set"
)

const (
	reportLink = "report"
	prevLink   = "prev"
)

// Report 一次表变更的记录
type Report struct {
	// ID 历史节点的 CID，不写入存储块
	ID    string `json:"-"`
	Table string `json:"table"`
	Mode  Mode   `json:"mode"`
	// Raw 原始输入的列名，非法 UTF-8 存为 U+FFFD
	Raw      []string          `json:"raw"`
	Names    []string          `json:"names"`
	Warnings []colname.Warning `json:"warnings,omitempty"`
	MaxBytes int               `json:"max_bytes"`
	Time     time.Time         `json:"time"`
}

// History 返回 table 的变更记录，最新的在前
func (c *Catalog) History(ctx context.Context, table string) ([]Report, error) {
	e, err := c.load(ctx, "history", table)
	if err != nil {
		return nil, err
	}
	if e.Head == "" {
		return nil, nil
	}

	cur, err := cid.Decode(e.Head)
	if err != nil {
		return nil, &TableError{Op: "history", Table: table, Err: fmt.Errorf("%w: head: %v", ErrCorruptHistory, err)}
	}

	var reports []Report
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		r, prev, err := c.readNode(ctx, cur)
		if err != nil {
			return nil, &TableError{Op: "history", Table: table, Err: err}
		}
		reports = append(reports, *r)

		if !prev.Defined() {
			return reports, nil
		}
		cur = prev
	}
}

// readNode 读取 id 处的历史节点及其报告
// 第一个节点的 prev 为 cid.Undef
func (c *Catalog) readNode(ctx context.Context, id cid.Cid) (*Report, cid.Cid, error) {
	nd, err := c.dagService.Get(ctx, id)
	if err != nil {
		return nil, cid.Undef, err
	}

	pn, ok := nd.(*merkledag.ProtoNode)
	if !ok {
		return nil, cid.Undef, fmt.Errorf("%w: %s is not a dag-pb node", ErrCorruptHistory, id)
	}

	lnk, err := pn.GetNodeLink(reportLink)
	if err != nil {
		return nil, cid.Undef, fmt.Errorf("%w: %s: %v", ErrCorruptHistory, id, err)
	}

	blk, err := c.blockStore.Get(ctx, lnk.Cid)
	if err != nil {
		return nil, cid.Undef, err
	}

	var r Report
	if err = json.Unmarshal(blk.RawData(), &r); err != nil {
		return nil, cid.Undef, fmt.Errorf("%w: report %s: %v", ErrCorruptHistory, lnk.Cid, err)
	}
	r.ID = id.String()

	prev, err := pn.GetNodeLink(prevLink)
	if errors.Is(err, merkledag.ErrLinkNotFound) {
		return &r, cid.Undef, nil
	}
	if err != nil {
		return nil, cid.Undef, err
	}
	return &r, prev.Cid, nil
}
