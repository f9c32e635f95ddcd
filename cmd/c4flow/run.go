package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/archflow/c4flow/internal/engine"
	"github.com/archflow/c4flow/internal/telemetry"
)

var (
	runFormat      string
	runOut         string
	runSink        string
	runPostgresDSN string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run the full parse -> layout -> detect -> render pipeline",
	Long:  `Reads a DSL or JSON architecture model (from a file, or stdin with "-" or no argument), runs it through layout and detection, and prints the rendered DOT document.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		input := readInput(path)

		cfg := loadEngineConfig()
		cfg.SourceFormat = runFormat

		obs, err := resolveSink()
		if err != nil {
			fmt.Printf("Error configuring sink: %v\n", err)
			os.Exit(1)
		}

		e := engine.New(cfg, obs)
		result, err := e.Run(input)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "layout: %d iterations, final_temp=%.4f, %dms\n",
			result.Stats.IterationsRun, result.Stats.FinalTemperature, result.Stats.DurationMs)
		fmt.Fprintf(os.Stderr, "detector: %d findings\n", len(result.Findings))

		writeOutput(runOut, result.DOT)
	},
}

// resolveSink builds the telemetry.Observer runCmd passes to the engine,
// going through engine.NewSink for the no-argument sinks and constructing
// PostgresSink directly here since it alone needs a connection string.
func resolveSink() (telemetry.Observer, error) {
	if runSink == "postgres" {
		if runPostgresDSN == "" {
			return nil, fmt.Errorf("--postgres-dsn is required when --sink=postgres")
		}
		return telemetry.NewPostgresSink(context.Background(), runPostgresDSN)
	}
	return engine.NewSink(runSink)
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runFormat, "format", "json", "input format: dsl or json")
	runCmd.Flags().StringVarP(&runOut, "output", "o", "-", "output file, or - for stdout")
	runCmd.Flags().StringVar(&runSink, "sink", "console", "telemetry sink: console, prometheus, or postgres")
	runCmd.Flags().StringVar(&runPostgresDSN, "postgres-dsn", "", "postgres connection string, required when --sink=postgres")
}
