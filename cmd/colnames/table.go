package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tragoedia0722/colnames/pkg/catalog"
	"github.com/tragoedia0722/colnames/pkg/colname"
)

func newTableCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Manage the column names of stored tables",
	}

	cmd.AddCommand(
		a.newMutateCmd("add", "Append the cleaned header of a file to a table", (*catalog.Catalog).AddColumns),
		a.newMutateCmd("set", "Replace the columns of a table with a cleaned header", (*catalog.Catalog).SetColumns),
		a.newShowCmd(),
		a.newListCmd(),
		a.newHistoryCmd(),
		a.newVerifyCmd(),
		a.newDropCmd(),
	)
	return cmd
}

// withCatalog 在 fn 执行期间打开配置的目录
func (a *app) withCatalog(fn func(c *catalog.Catalog) error) (err error) {
	c, err := catalog.Open(a.cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(c)
}

type mutateFunc func(c *catalog.Catalog, ctx context.Context, table string, raw []string, settings colname.Settings) (*catalog.Report, error)

func (a *app) newMutateCmd(use, short string, mutate mutateFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <table> [file]",
		Short: short,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readHeaderArg(cmd, args, 1)
			if err != nil {
				return err
			}

			return a.withCatalog(func(c *catalog.Catalog) error {
				r, err := mutate(c, cmd.Context(), args[0], raw, a.settings)
				if err != nil {
					return err
				}
				return a.printNames(cmd, a.newNamesOutput(r.Table, r.Names, r.Warnings))
			})
		},
	}
}

func (a *app) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <table>",
		Short: "Print the columns of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCatalog(func(c *catalog.Catalog) error {
				cols, err := c.Columns(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if a.asJSON {
					return writeJSON(cmd.OutOrStdout(), map[string]any{"table": args[0], "columns": cols})
				}
				return printLines(cmd, cols)
			})
		},
	}
}

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCatalog(func(c *catalog.Catalog) error {
				tables, err := c.Tables(cmd.Context())
				if err != nil {
					return err
				}
				if a.asJSON {
					return writeJSON(cmd.OutOrStdout(), tables)
				}
				return printLines(cmd, tables)
			})
		},
	}
}

func (a *app) newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <table>",
		Short: "Show the changes made to a table, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCatalog(func(c *catalog.Catalog) error {
				reports, err := c.History(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				if a.asJSON {
					out := make([]map[string]any, len(reports))
					for i, r := range reports {
						out[i] = map[string]any{"id": r.ID, "report": r}
					}
					return writeJSON(cmd.OutOrStdout(), out)
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, r := range reports {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
						r.ID, r.Time.Format(time.RFC3339), r.Mode, len(r.Warnings), strings.Join(r.Names, ", "))
				}
				return tw.Flush()
			})
		},
	}
}

func (a *app) newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <table>",
		Short: "Check that the history of a table is intact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCatalog(func(c *catalog.Catalog) error {
				result, err := c.Verify(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				if a.asJSON {
					if err = writeJSON(cmd.OutOrStdout(), result); err != nil {
						return err
					}
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %d blocks, %d reports, %d bytes\n",
						result.Table, result.Nodes, result.Reports, result.ReachableSize)
					for _, m := range result.MissingBlocks {
						fmt.Fprintln(cmd.OutOrStdout(), "missing:", m)
					}
					for _, b := range result.InvalidBlocks {
						fmt.Fprintln(cmd.OutOrStdout(), "invalid:", b)
					}
				}

				if !result.IsComplete {
					return fmt.Errorf("history of %q is incomplete", args[0])
				}
				return nil
			})
		},
	}
}

func (a *app) newDropCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drop <table>",
		Short: "Remove a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCatalog(func(c *catalog.Catalog) error {
				return c.Drop(cmd.Context(), args[0])
			})
		},
	}
}

func printLines(cmd *cobra.Command, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), l); err != nil {
			return err
		}
	}
	return nil
}
