package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/tragoedia0722/colnames/internal/config"
	"github.com/tragoedia0722/colnames/pkg/colname"
)

// app 所有子命令共享的状态
// 由根命令的 PersistentPreRunE 填充
type app struct {
	cfgFile string
	lang    string
	asJSON  bool

	cfg      *config.Config
	settings colname.Settings
	tag      language.Tag
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "colnames",
		Short: "Clean and deduplicate column names",
		Long: `colnames turns raw column names into names that are valid UTF-8,
free of control characters, within a byte budget and unique.

Examples:
  colnames clean data.csv            Clean the header row of data.csv
  colnames clean --existing id < in  Clean names read from stdin, avoiding "id"
  colnames table add orders in.csv   Append the header of in.csv to table "orders"
  colnames table history orders      Show how "orders" changed`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.colnames/config.yaml)")
	pf.String("store", config.DefaultStore, "catalog directory")
	pf.Int("max-bytes", colname.DefaultMaxBytesPerColumnName, "maximum UTF-8 bytes per column name")
	pf.String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.StringVar(&a.lang, "lang", "en", "language for warning messages")
	pf.BoolVar(&a.asJSON, "json", false, "print JSON instead of text")

	root.AddCommand(newCleanCmd(a))
	root.AddCommand(newTableCmd(a))

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	if err = cfg.ApplyLogLevel(); err != nil {
		return err
	}

	settings, err := cfg.Settings()
	if err != nil {
		return err
	}

	tag, err := language.Parse(a.lang)
	if err != nil {
		return fmt.Errorf("invalid --lang %q: %w", a.lang, err)
	}

	a.cfg = cfg
	a.settings = settings
	a.tag = tag
	return nil
}
