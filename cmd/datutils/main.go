// Package main provides the datutils CLI tool for inspecting, converting
// and verifying files written by the datutils library.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
