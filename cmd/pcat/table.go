// Table command group for the pcat CLI.
package main

import "github.com/spf13/cobra"

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Work with table snapshot files",
}

func init() {
	tableCmd.AddCommand(tableNewCmd)
	tableCmd.AddCommand(tableShowCmd)
	tableCmd.AddCommand(tableColsCmd)
	tableCmd.AddCommand(tableFillCmd)
}
