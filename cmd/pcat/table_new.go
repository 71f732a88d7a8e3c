// Table creation command for the pcat CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	tableNewDepth   int
	tableNewColumns string
)

var tableNewCmd = &cobra.Command{
	Use:   "new <file>",
	Short: "Create a new table snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		specs, err := parseColumnSpecs(tableNewColumns)
		if err != nil {
			fmt.Fprintln(os.Stderr, "new:", err)
			os.Exit(exitUserError)
		}

		path, err := snapshotPath(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "new:", err)
			os.Exit(exitSysError)
		}

		lib := openSession()
		tbl, err := lib.NewTable(tableNewDepth)
		if err != nil {
			fmt.Fprintln(os.Stderr, "new table:", err)
			os.Exit(exitUserError)
		}
		defer lib.CloseOrLog(tbl)

		for _, spec := range specs {
			if err := tbl.NewColumn(spec.name, spec.kind); err != nil {
				fmt.Fprintln(os.Stderr, "new column:", err)
				os.Exit(exitUserError)
			}
		}

		if err := tbl.Save(path); err != nil {
			fmt.Fprintln(os.Stderr, "save:", err)
			os.Exit(exitSysError)
		}

		fmt.Printf("Created table %s: %d rows, %d columns\n", args[0], tableNewDepth, len(specs))
		return nil
	},
}

func init() {
	tableNewCmd.Flags().IntVar(&tableNewDepth, "depth", 1, "number of rows")
	tableNewCmd.Flags().StringVar(&tableNewColumns, "columns", "", "comma-separated name:kind column specs (required)")
	tableNewCmd.MarkFlagRequired("columns")
}
