package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/ipfs/boxo/datastore/dshelp"
	"github.com/ipfs/boxo/ipld/merkledag"
	"github.com/ipfs/go-cid"
	ds "github.com/ipfs/go-datastore"

	"github.com/tragoedia0722/colnames/pkg/colname"
)

func seedHistory(t *testing.T, c *Catalog, table string, batches ...[]string) {
	t.Helper()
	for _, raw := range batches {
		if _, err := c.AddColumns(context.Background(), table, raw, colname.DefaultSettings()); err != nil {
			t.Fatalf("AddColumns failed: %v", err)
		}
	}
}

func reportCid(t *testing.T, c *Catalog, node string) cid.Cid {
	t.Helper()
	id, err := cid.Decode(node)
	if err != nil {
		t.Fatal(err)
	}
	nd, err := c.dagService.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	lnk, err := nd.(*merkledag.ProtoNode).GetNodeLink(reportLink)
	if err != nil {
		t.Fatalf("GetNodeLink failed: %v", err)
	}
	return lnk.Cid
}

func TestCatalog_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("complete history", func(t *testing.T) {
		c := openCatalog(t)
		seedHistory(t, c, "t", []string{"a"}, []string{"a"}, []string{""})

		result, err := c.Verify(ctx, "t")
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if !result.IsComplete {
			t.Errorf("expected complete result: %+v", result)
		}
		if result.Nodes != 6 || result.Reports != 3 {
			t.Errorf("Nodes = %d, Reports = %d, want 6 and 3", result.Nodes, result.Reports)
		}
		if result.ReachableSize <= 0 {
			t.Errorf("ReachableSize = %d", result.ReachableSize)
		}
	})

	t.Run("missing node", func(t *testing.T) {
		c := openCatalog(t)
		seedHistory(t, c, "t", []string{"a"}, []string{"b"}, []string{"c"})

		history, _ := c.History(ctx, "t")
		middle, _ := cid.Decode(history[1].ID)
		if err := c.blockStore.DeleteBlock(ctx, middle); err != nil {
			t.Fatalf("DeleteBlock failed: %v", err)
		}

		result, err := c.Verify(ctx, "t")
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if result.IsComplete {
			t.Error("expected incomplete result")
		}
		if len(result.MissingBlocks) != 1 || result.MissingBlocks[0] != middle.String() {
			t.Errorf("MissingBlocks = %v, want [%s]", result.MissingBlocks, middle)
		}
		// 缺口之后只有头节点和它的报告可达
		if result.Nodes != 2 || result.Reports != 1 {
			t.Errorf("Nodes = %d, Reports = %d, want 2 and 1", result.Nodes, result.Reports)
		}
	})

	t.Run("corrupt report", func(t *testing.T) {
		c := openCatalog(t)
		seedHistory(t, c, "t", []string{"a"}, []string{"b"})

		history, _ := c.History(ctx, "t")
		report := reportCid(t, c, history[0].ID)

		key := ds.NewKey("/blocks").Child(dshelp.MultihashToDsKey(report.Hash()))
		if err := c.storage.Datastore().Put(ctx, key, []byte(`{"table":"forged"}`)); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		result, err := c.Verify(ctx, "t")
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if result.IsComplete {
			t.Error("expected incomplete result")
		}
		if len(result.InvalidBlocks) != 1 || result.InvalidBlocks[0] != report.String() {
			t.Errorf("InvalidBlocks = %v, want [%s]", result.InvalidBlocks, report)
		}
		if len(result.MissingBlocks) != 0 {
			t.Errorf("MissingBlocks = %v", result.MissingBlocks)
		}
	})

	t.Run("missing table", func(t *testing.T) {
		c := openCatalog(t)
		if _, err := c.Verify(ctx, "nope"); !errors.Is(err, ErrTableNotFound) {
			t.Errorf("expected ErrTableNotFound, got %v", err)
		}
	})
}
