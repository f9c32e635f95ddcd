package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/archflow/c4flow/internal/bridge"
)

var (
	renderFindings string
	renderOut      string
)

var renderCmd = &cobra.Command{
	Use:   "render [model-file]",
	Short: "Render Model JSON and Findings JSON into Graphviz DOT",
	Long:  `Reads Model JSON (from a file, or stdin with "-" or no argument) and a Findings JSON document from --findings, and prints the rendered DOT document.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		model := readInput(path)

		findings := `{"patterns":[],"count":0}`
		if renderFindings != "" {
			findings = readInput(renderFindings)
		}

		out := bridge.GenerateDot(model, findings)
		if bridge.IsError(out) {
			fmt.Println(out)
			os.Exit(1)
		}
		writeOutput(renderOut, out)
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVar(&renderFindings, "findings", "", "path to a Findings JSON file (defaults to no findings)")
	renderCmd.Flags().StringVarP(&renderOut, "output", "o", "-", "output file, or - for stdout")
}
