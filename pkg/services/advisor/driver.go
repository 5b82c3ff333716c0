package advisor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Driver abstracts the reasoning backend that turns a review prompt into a
// response. The response may be structured JSON or free text; callers must
// parse it defensively.
type Driver interface {
	// Review sends the prompt and returns the raw response body.
	Review(ctx context.Context, prompt string) (string, error)

	// HealthCheck verifies the driver is usable.
	HealthCheck(ctx context.Context) error
}

// CLIDriver implements Driver by shelling out to an agent CLI that reads
// the prompt on stdin and writes its answer to stdout.
type CLIDriver struct {
	command string
	model   string
}

func NewCLIDriver(command, model string) *CLIDriver {
	if command == "" {
		command = "claude"
	}
	if model == "" {
		model = "sonnet"
	}
	return &CLIDriver{command: command, model: model}
}

func (d *CLIDriver) Review(ctx context.Context, prompt string) (string, error) {
	if err := d.HealthCheck(ctx); err != nil {
		return "", fmt.Errorf("agent CLI not available: %w", err)
	}

	args := []string{
		"--model", d.model,
		"--output-format", "json",
		"--max-turns", "1",
	}

	cmd := exec.CommandContext(ctx, d.command, args...)
	cmd.Stdin = strings.NewReader(prompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("agent CLI failed: %w (stderr: %s)", err, stderr.String())
	}

	return stdout.String(), nil
}

func (d *CLIDriver) HealthCheck(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, d.command, "--version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s not found in PATH: %w", d.command, err)
	}
	return nil
}
