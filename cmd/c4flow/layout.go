package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/archflow/c4flow/internal/bridge"
)

var (
	layoutOut  string
	iterations int
	initTemp   float64
	area       float64
	seed       uint64
)

var layoutCmd = &cobra.Command{
	Use:   "layout [file]",
	Short: "Run the force-directed optimizer over a Model JSON document",
	Long:  `Reads Model JSON (from a file, or stdin with "-" or no argument), runs Fruchterman-Reingold layout, and prints the Optimized model JSON shape.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		input := readInput(path)

		cfg := fmt.Sprintf(
			`{"iterations":%d,"initial_temperature":%g,"area":%g,"seed":%d}`,
			iterations, initTemp, area, seed,
		)

		out := bridge.OptimizeLayout(input, cfg)
		if bridge.IsError(out) {
			fmt.Println(out)
			os.Exit(1)
		}
		writeOutput(layoutOut, out)
	},
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	layoutCmd.Flags().StringVarP(&layoutOut, "output", "o", "-", "output file, or - for stdout")
	layoutCmd.Flags().IntVar(&iterations, "iterations", 150, "number of cooling iterations")
	layoutCmd.Flags().Float64Var(&initTemp, "initial-temperature", 0.2, "initial temperature T0")
	layoutCmd.Flags().Float64Var(&area, "area", 2000.0, "frame area")
	layoutCmd.Flags().Uint64Var(&seed, "seed", 0xC4_0000_0001, "deterministic placement seed")
}
