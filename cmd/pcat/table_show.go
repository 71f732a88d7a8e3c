// Table display command for the pcat CLI.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var tableShowCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print the contents of a table snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := snapshotPath(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "show:", err)
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

		if flagJSON {
			rows := make([]map[string]string, depth)
			for row := 0; row < depth; row++ {
				rec := make(map[string]string, len(names))
				for _, name := range names {
					v, err := tbl.Cell(name, row)
					if err != nil {
						fmt.Fprintln(os.Stderr, "cell:", err)
						os.Exit(exitSysError)
					}
					rec[name] = v.String()
				}
				rows[row] = rec
			}
			out, err := json.MarshalIndent(rows, "", "  ")
			if err != nil {
				fmt.Fprintln(os.Stderr, "marshal JSON:", err)
				os.Exit(exitSysError)
			}
			fmt.Println(string(out))
			return nil
		}

		fmt.Println(strings.Join(names, "\t"))
		for row := 0; row < depth; row++ {
			cells := make([]string, len(names))
			for i, name := range names {
				v, err := tbl.Cell(name, row)
				if err != nil {
					fmt.Fprintln(os.Stderr, "cell:", err)
					os.Exit(exitSysError)
				}
				cells[i] = v.String()
			}
			fmt.Println(strings.Join(cells, "\t"))
		}
		return nil
	},
}
