// Version command for the pcat CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/perseid-io/perseid-go/pkg/perseid"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pcat version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("pcat", perseid.Version)
	},
}
