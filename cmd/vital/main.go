// ABOUTME: Entry point for the vital CLI.
// ABOUTME: Invokes the root Cobra command and emits the JSON error envelope.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorEnvelope("", "general_error", err.Error()))
		os.Exit(1)
	}
}
