package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const engineVersion = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of c4flow",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("c4flow v" + engineVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
