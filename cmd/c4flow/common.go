package main

import (
	"fmt"
	"io"
	"os"

	"github.com/archflow/c4flow/internal/engine"
)

// loadEngineConfig loads the config at --config, falling back to the
// documented defaults when the flag is unset.
func loadEngineConfig() engine.Config {
	cfg, err := engine.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// readInput reads path, or stdin when path is "-" or empty.
func readInput(path string) string {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Printf("Error reading stdin: %v\n", err)
			os.Exit(1)
		}
		return string(data)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading %s: %v\n", path, err)
		os.Exit(1)
	}
	return string(data)
}

// writeOutput writes content to path, or stdout when path is "-" or empty.
func writeOutput(path, content string) {
	if path == "" || path == "-" {
		fmt.Println(content)
		return
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		fmt.Printf("Error writing %s: %v\n", path, err)
		os.Exit(1)
	}
}
