package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/archflow/c4flow/internal/bridge"
)

var (
	parseFormat string
	parseOut    string
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a DSL or JSON model into Model JSON",
	Long:  `Reads a DSL or JSON architecture model (from a file, or stdin with "-" or no argument) and prints its Model JSON representation.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		input := readInput(path)

		var out string
		switch parseFormat {
		case "dsl":
			out = bridge.ParseDSL(input)
		case "json":
			// Model JSON is already the parsed representation; round-trip
			// it through the bridge's own decode/encode pair so parse
			// validates it the same way dsl input is validated.
			out = bridge.GenerateModel(input)
		default:
			fmt.Printf("Error: unknown --format %q, want dsl or json\n", parseFormat)
			os.Exit(1)
		}

		writeOutput(parseOut, out)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVar(&parseFormat, "format", "dsl", "input format: dsl or json")
	parseCmd.Flags().StringVarP(&parseOut, "output", "o", "-", "output file, or - for stdout")
}
