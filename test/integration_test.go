// ABOUTME: Integration tests for the vital CLI.
// ABOUTME: Builds the binary and exercises a full workflow end to end.
package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	projectRoot, _ := filepath.Abs("..")
	vitalBinary := filepath.Join(projectRoot, "vital")

	buildCmd := exec.Command("go", "build", "-o", vitalBinary, "./cmd/vital")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}
	defer os.Remove(vitalBinary)

	// Isolated data directory
	tmpDir := t.TempDir()

	run := func(args ...string) (string, error) {
		cmd := exec.Command(vitalBinary, args...)
		cmd.Env = append(os.Environ(), "VITAL_HOME="+tmpDir)
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	// Seed config with default aliases
	output, err := run("init")
	if err != nil {
		t.Fatalf("Failed to init: %v\n%s", err, output)
	}

	// Log a metric
	output, err = run("log", "weight", "82.5")
	if err != nil {
		t.Fatalf("Failed to log weight: %v\n%s", err, output)
	}
	if !strings.Contains(output, `"status":"ok"`) || !strings.Contains(output, `"command":"log"`) {
		t.Errorf("Expected an ok log envelope, got: %s", output)
	}

	// Aliases resolve
	output, err = run("log", "wa", "500")
	if err != nil {
		t.Fatalf("Failed to log water via alias: %v\n%s", err, output)
	}
	if !strings.Contains(output, `"water"`) {
		t.Errorf("Expected alias to resolve to water, got: %s", output)
	}

	// Show
	output, err = run("show", "weight")
	if err != nil {
		t.Fatalf("Failed to show: %v\n%s", err, output)
	}
	if !strings.Contains(output, "82.5") {
		t.Errorf("Expected 82.5 in show output, got: %s", output)
	}

	// Human output
	output, err = run("log", "weight", "82.3", "--human")
	if err != nil {
		t.Fatalf("Failed to log with --human: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Logged weight") {
		t.Errorf("Expected 'Logged weight' in output, got: %s", output)
	}

	// Goals
	output, err = run("goal", "set", "water", "2000", "above", "daily")
	if err != nil {
		t.Fatalf("Failed to set goal: %v\n%s", err, output)
	}
	output, err = run("goal", "status")
	if err != nil {
		t.Fatalf("Failed to get goal status: %v\n%s", err, output)
	}
	if !strings.Contains(output, `"water"`) {
		t.Errorf("Expected water goal in status, got: %s", output)
	}

	// Medications
	output, err = run("med", "add", "ibuprofen", "--dose", "400mg", "--freq", "2x_daily")
	if err != nil {
		t.Fatalf("Failed to add medication: %v\n%s", err, output)
	}
	output, err = run("med", "take", "ibuprofen")
	if err != nil {
		t.Fatalf("Failed to take medication: %v\n%s", err, output)
	}
	output, err = run("med", "status", "ibuprofen")
	if err != nil {
		t.Fatalf("Failed to get med status: %v\n%s", err, output)
	}
	if !strings.Contains(output, `"taken_today":1`) {
		t.Errorf("Expected taken_today 1, got: %s", output)
	}

	// Status overview
	output, err = run("status")
	if err != nil {
		t.Fatalf("Failed to get status: %v\n%s", err, output)
	}
	if !strings.Contains(output, `"logging_days"`) {
		t.Errorf("Expected logging streak in status, got: %s", output)
	}

	// Errors render the envelope
	output, _ = run("log", "weight", "not-a-number")
	if !strings.Contains(output, `"status":"error"`) {
		t.Errorf("Expected an error envelope, got: %s", output)
	}
}
