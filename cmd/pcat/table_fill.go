// Column fill command for the pcat CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	tableFillColumn string
	tableFillValue  string
)

var tableFillCmd = &cobra.Command{
	Use:   "fill <file>",
	Short: "Set every cell of a column to one value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := snapshotPath(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "fill:", err)
			os.Exit(exitSysError)
		}

		lib := openSession()
		tbl, err := lib.LoadTable(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "load:", err)
			os.Exit(exitUserError)
		}
		defer lib.CloseOrLog(tbl)

		ref, err := tbl.Column(tableFillColumn)
		if err != nil {
			fmt.Fprintln(os.Stderr, "column:", err)
			os.Exit(exitUserError)
		}
		kind, err := ref.Kind()
		if err != nil {
			fmt.Fprintln(os.Stderr, "column kind:", err)
			os.Exit(exitSysError)
		}

		v, err := parseValue(kind, tableFillValue)
		if err != nil {
			fmt.Fprintln(os.Stderr, "fill:", err)
			os.Exit(exitUserError)
		}

		depth, err := tbl.Depth()
		if err != nil {
			fmt.Fprintln(os.Stderr, "depth:", err)
			os.Exit(exitSysError)
		}
		for row := 0; row < depth; row++ {
			if err := tbl.SetCell(tableFillColumn, row, v); err != nil {
				fmt.Fprintln(os.Stderr, "set cell:", err)
				os.Exit(exitUserError)
			}
		}

		if err := tbl.Save(path); err != nil {
			fmt.Fprintln(os.Stderr, "save:", err)
			os.Exit(exitSysError)
		}

		fmt.Printf("Filled %s.%s with %s (%d rows)\n", args[0], tableFillColumn, v, depth)
		return nil
	},
}

func init() {
	tableFillCmd.Flags().StringVar(&tableFillColumn, "column", "", "column name (required)")
	tableFillCmd.Flags().StringVar(&tableFillValue, "value", "", "value to store in every row (required)")
	tableFillCmd.MarkFlagRequired("column")
	tableFillCmd.MarkFlagRequired("value")
}
