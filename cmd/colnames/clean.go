package main

import (
	"github.com/spf13/cobra"

	"github.com/tragoedia0722/colnames/pkg/colname"
)

func newCleanCmd(a *app) *cobra.Command {
	var existing []string

	cmd := &cobra.Command{
		Use:   "clean [file]",
		Short: "Clean the header row of a CSV file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readHeaderArg(cmd, args, 0)
			if err != nil {
				return err
			}

			names, warnings, err := colname.GenUniqueAndWarn(raw, a.settings, existing)
			if err != nil {
				return err
			}
			return a.printNames(cmd, a.newNamesOutput("", names, warnings))
		},
	}

	cmd.Flags().StringArrayVar(&existing, "existing", nil, "name that is already taken (repeatable)")
	return cmd
}
