package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/archflow/c4flow/internal/bridge"
)

var (
	detectOut             string
	bottleneckThreshold   int
	overCouplingThreshold int
)

var detectCmd = &cobra.Command{
	Use:   "detect [file]",
	Short: "Run the anti-pattern detector over a Model JSON document",
	Long:  `Reads Model JSON (from a file, or stdin with "-" or no argument) and prints the Findings JSON shape.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		input := readInput(path)

		cfg := ""
		if bottleneckThreshold != 0 || overCouplingThreshold != 0 {
			cfg = fmt.Sprintf(
				`{"bottleneck_threshold":%d,"over_coupling_threshold":%d}`,
				bottleneckThreshold, overCouplingThreshold,
			)
		}

		out := bridge.DetectAntiPatterns(input, cfg)
		if bridge.IsError(out) {
			fmt.Println(out)
			os.Exit(1)
		}
		writeOutput(detectOut, out)
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
	detectCmd.Flags().StringVarP(&detectOut, "output", "o", "-", "output file, or - for stdout")
	detectCmd.Flags().IntVar(&bottleneckThreshold, "bottleneck-threshold", 5, "in-degree above which a node is a Bottleneck")
	detectCmd.Flags().IntVar(&overCouplingThreshold, "over-coupling-threshold", 8, "out-degree above which a node is OverCoupling")
}
