package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/quire"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), quire.ReadBuildInfo())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
