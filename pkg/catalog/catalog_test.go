package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/tragoedia0722/colnames/pkg/colname"
)

func openCatalog(t *testing.T) *Catalog {
	t.Helper()

	c, err := Open(filepath.Join(t.TempDir(), "catalog"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	var tick int
	c.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	t.Cleanup(func() {
		if err := c.Close(); err != nil {
			t.Logf("warning: failed to close catalog: %v", err)
		}
	})
	return c
}

func assertNames(t *testing.T, got, want []string) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Errorf("names = %q, want %q", got, want)
	}
}

func TestCatalog_AddColumns(t *testing.T) {
	c := openCatalog(t)
	ctx := context.Background()
	settings := colname.DefaultSettings()

	r, err := c.AddColumns(ctx, "people", []string{"A", "A", ""}, settings)
	if err != nil {
		t.Fatalf("AddColumns failed: %v", err)
	}
	assertNames(t, r.Names, []string{"A", "A 2", "Column 3"})
	if r.Mode != ModeAdd || r.Table != "people" || r.ID == "" {
		t.Errorf("unexpected report: %+v", r)
	}
	if len(r.Warnings) != 2 {
		t.Errorf("expected defaulted and numbered warnings, got %+v", r.Warnings)
	}

	r, err = c.AddColumns(ctx, "people", []string{"A", ""}, settings)
	if err != nil {
		t.Fatalf("AddColumns failed: %v", err)
	}
	assertNames(t, r.Names, []string{"A 3", "Column 5"})

	cols, err := c.Columns(ctx, "people")
	if err != nil {
		t.Fatalf("Columns failed: %v", err)
	}
	assertNames(t, cols, []string{"A", "A 2", "Column 3", "A 3", "Column 5"})
}

func TestCatalog_SetColumns(t *testing.T) {
	c := openCatalog(t)
	ctx := context.Background()
	settings := colname.DefaultSettings()

	if _, err := c.AddColumns(ctx, "t", []string{"a", "b"}, settings); err != nil {
		t.Fatalf("AddColumns failed: %v", err)
	}

	r, err := c.SetColumns(ctx, "t", []string{"b", "b\x00", "a"}, settings)
	if err != nil {
		t.Fatalf("SetColumns failed: %v", err)
	}
	assertNames(t, r.Names, []string{"b", "b 2", "a"})

	cols, _ := c.Columns(ctx, "t")
	assertNames(t, cols, []string{"b", "b 2", "a"})
}

func TestCatalog_Errors(t *testing.T) {
	c := openCatalog(t)
	ctx := context.Background()

	t.Run("missing table", func(t *testing.T) {
		_, err := c.Columns(ctx, "nope")
		if !errors.Is(err, ErrTableNotFound) {
			t.Errorf("expected ErrTableNotFound, got %v", err)
		}
		var tableErr *TableError
		if !errors.As(err, &tableErr) || tableErr.Table != "nope" {
			t.Errorf("expected *TableError for nope, got %v", err)
		}
		if err := c.Drop(ctx, "nope"); !errors.Is(err, ErrTableNotFound) {
			t.Errorf("Drop: expected ErrTableNotFound, got %v", err)
		}
	})

	t.Run("invalid names", func(t *testing.T) {
		for _, name := range []string{"", "a/b", "/", ".", ".."} {
			if _, err := c.AddColumns(ctx, name, []string{"x"}, colname.DefaultSettings()); !errors.Is(err, ErrInvalidTable) {
				t.Errorf("AddColumns(%q): expected ErrInvalidTable, got %v", name, err)
			}
		}
	})

	t.Run("invalid settings", func(t *testing.T) {
		_, err := c.AddColumns(ctx, "t", []string{"x"}, colname.Settings{})
		var settingsErr *colname.SettingsError
		if !errors.As(err, &settingsErr) {
			t.Errorf("expected *colname.SettingsError, got %v", err)
		}
	})

	t.Run("budget exhausted leaves table untouched", func(t *testing.T) {
		_, err := c.AddColumns(ctx, "tiny", slices.Repeat([]string{"a"}, 10), colname.Settings{MaxBytesPerColumnName: 2})
		if !errors.Is(err, colname.ErrBudgetExhausted) {
			t.Fatalf("expected ErrBudgetExhausted, got %v", err)
		}
		if _, err := c.Columns(ctx, "tiny"); !errors.Is(err, ErrTableNotFound) {
			t.Errorf("table should not exist, got %v", err)
		}
	})
}

func TestCatalog_TablesAndDrop(t *testing.T) {
	c := openCatalog(t)
	ctx := context.Background()

	tables, err := c.Tables(ctx)
	if err != nil {
		t.Fatalf("Tables failed: %v", err)
	}
	if len(tables) != 0 {
		t.Errorf("expected no tables, got %q", tables)
	}

	for _, name := range []string{"orders", "Customers", "items 2"} {
		if _, err := c.AddColumns(ctx, name, []string{"id"}, colname.DefaultSettings()); err != nil {
			t.Fatalf("AddColumns(%q) failed: %v", name, err)
		}
	}

	tables, _ = c.Tables(ctx)
	assertNames(t, tables, []string{"Customers", "items 2", "orders"})

	if err := c.Drop(ctx, "orders"); err != nil {
		t.Fatalf("Drop failed: %v", err)
	}
	tables, _ = c.Tables(ctx)
	assertNames(t, tables, []string{"Customers", "items 2"})

	if _, err := c.Columns(ctx, "orders"); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("expected ErrTableNotFound after drop, got %v", err)
	}

	r, err := c.AddColumns(ctx, "orders", []string{"id"}, colname.DefaultSettings())
	if err != nil {
		t.Fatalf("AddColumns after drop failed: %v", err)
	}
	assertNames(t, r.Names, []string{"id"})
}

func TestCatalog_Persistence(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "catalog")
	ctx := context.Background()

	c, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err = c.AddColumns(ctx, "t", []string{"a", "a"}, colname.DefaultSettings()); err != nil {
		t.Fatalf("AddColumns failed: %v", err)
	}
	if err = c.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if _, err = c.Columns(ctx, "t"); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}

	c, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer c.Close()

	cols, err := c.Columns(ctx, "t")
	if err != nil {
		t.Fatalf("Columns failed: %v", err)
	}
	assertNames(t, cols, []string{"a", "a 2"})

	usage, err := c.Usage(ctx)
	if err != nil {
		t.Fatalf("Usage failed: %v", err)
	}
	if usage == 0 {
		t.Error("expected non-zero usage")
	}
}

func TestCatalog_Destroy(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "catalog")

	c, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err = c.Destroy(); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}

	c, err = Open(dir)
	if err != nil {
		t.Fatalf("Open after Destroy failed: %v", err)
	}
	defer c.Close()

	tables, err := c.Tables(context.Background())
	if err != nil || len(tables) != 0 {
		t.Errorf("expected empty catalog, got %q, %v", tables, err)
	}
}

func TestCatalog_ConcurrentAdds(t *testing.T) {
	c := openCatalog(t)
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.AddColumns(ctx, "shared", []string{"c"}, colname.DefaultSettings()); err != nil {
				t.Errorf("AddColumns failed: %v", err)
			}
		}()
	}
	wg.Wait()

	cols, err := c.Columns(ctx, "shared")
	if err != nil {
		t.Fatalf("Columns failed: %v", err)
	}

	want := []string{"c"}
	for i := 2; i <= workers; i++ {
		want = append(want, fmt.Sprintf("c %d", i))
	}
	assertNames(t, cols, want)
}
