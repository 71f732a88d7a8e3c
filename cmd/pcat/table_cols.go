// Column listing command for the pcat CLI.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var tableColsCmd = &cobra.Command{
	Use:   "cols <file>",
	Short: "List the columns of a table snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := snapshotPath(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "cols:", err)
			os.Exit(exitSysError)
		}

		lib := openSession()
		tbl, err := lib.LoadTable(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "load:", err)
			os.Exit(exitUserError)
		}
		defer lib.CloseOrLog(tbl)

		depth, err := tbl.Depth()
		if err != nil {
			fmt.Fprintln(os.Stderr, "depth:", err)
			os.Exit(exitSysError)
		}
		names, err := tbl.ColumnNames()
		if err != nil {
			fmt.Fprintln(os.Stderr, "columns:", err)
			os.Exit(exitSysError)
		}

		type colInfo struct {
			Name string `json:"name"`
			Kind string `json:"kind"`
		}
		cols := make([]colInfo, len(names))
		for i, name := range names {
			ref, err := tbl.Column(name)
			if err != nil {
				fmt.Fprintln(os.Stderr, "column:", err)
				os.Exit(exitSysError)
			}
			kind, err := ref.Kind()
			if err != nil {
				fmt.Fprintln(os.Stderr, "column kind:", err)
				os.Exit(exitSysError)
			}
			cols[i] = colInfo{Name: name, Kind: kind.String()}
		}

		if flagJSON {
			out, err := json.MarshalIndent(struct {
				Depth   int       `json:"depth"`
				Columns []colInfo `json:"columns"`
			}{Depth: depth, Columns: cols}, "", "  ")
			if err != nil {
				fmt.Fprintln(os.Stderr, "marshal JSON:", err)
				os.Exit(exitSysError)
			}
			fmt.Println(string(out))
			return nil
		}

		fmt.Printf("%s: %d rows\n", args[0], depth)
		for i, c := range cols {
			fmt.Printf("  %d  %s  %s\n", i, c.Name, c.Kind)
		}
		return nil
	},
}
