// Package advisor integrates the reasoning engine that reviews a resource
// snapshot and proposes findings beyond the static rule sets.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/de-tools/arch-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

type Engine struct {
	driver Driver
}

func NewEngine(driver Driver) *Engine {
	return &Engine{driver: driver}
}

// Review asks the driver to evaluate the snapshot against the requested
// pillars and parses the response defensively. A driver failure is
// returned to the caller; an unparseable response is not — it degrades to
// the empty fallback result.
func (e *Engine) Review(ctx context.Context, snapshot domain.Snapshot, pillars []domain.Pillar) (Result, error) {
	logger := zerolog.Ctx(ctx)

	prompt, err := buildPrompt(snapshot, pillars)
	if err != nil {
		return Result{}, fmt.Errorf("failed to build prompt: %w", err)
	}

	raw, err := e.driver.Review(ctx, prompt)
	if err != nil {
		return Result{}, fmt.Errorf("engine invocation failed: %w", err)
	}

	result := Parse(raw)
	if !result.Structured {
		logger.Warn().
			Str("account_id", snapshot.AccountID).
			Msg("engine response not structured, using fallback result")
	}

	return result, nil
}

func buildPrompt(snapshot domain.Snapshot, pillars []domain.Pillar) (string, error) {
	names := make([]string, 0, len(pillars))
	for _, p := range pillars {
		names = append(names, string(p))
	}
	pillarList := strings.Join(names, ", ")

	inventory, err := json.Marshal(snapshot)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an AWS Well-Architected Framework expert.\n\n")
	fmt.Fprintf(&b, "Perform a comprehensive Well-Architected review for AWS account %s in region %s, focusing on pillars: %s.\n\n",
		snapshot.AccountID, snapshot.Region, pillarList)
	fmt.Fprintf(&b, "Resource inventory:\n%s\n\n", inventory)
	b.WriteString("For each finding, include the specific AWS service and resource affected, " +
		"a risk level (LOW, MEDIUM, HIGH, CRITICAL), and a detailed recommendation with implementation steps.\n\n")
	b.WriteString(`Return a structured JSON object: {"findings": [...], "recommendations": [...], "score": <0-100>}.`)

	return b.String(), nil
}
