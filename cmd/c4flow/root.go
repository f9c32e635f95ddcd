package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "c4flow",
	Short: "A C4 architecture diagram layout and analysis engine",
	Long:  `c4flow parses C4 architecture models, lays them out with a force-directed algorithm, detects structural anti-patterns, and renders Graphviz DOT.`,
}

// Execute runs the root command.
func Execute(version string) {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a c4flow config YAML file (defaults apply if omitted)")
}
