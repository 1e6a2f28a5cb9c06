// Package report persists batch results and performance statistics to JSON.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/davidbz/ember/internal/domain"
	"github.com/davidbz/ember/internal/observability"
)

const fileMode = 0o644

// Report is the persisted output of a run.
type Report struct {
	Timestamp   time.Time                 `json:"timestamp"`
	Model       string                    `json:"model"`
	Results     []*domain.MessageResponse `json:"results"`
	Performance domain.Summary            `json:"performance"`
}

// New assembles a report stamped with the current time.
func New(model string, results []*domain.MessageResponse, performance domain.Summary) *Report {
	return &Report{
		Timestamp:   time.Now(),
		Model:       model,
		Results:     results,
		Performance: performance,
	}
}

// Save writes the report to path as indented JSON.
func Save(ctx context.Context, path string, r *Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, fileMode); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	observability.FromContext(ctx).Info("results saved",
		observability.String("path", path))
	return nil
}

// Load reads a report back from path. Timestamp, model, results, and
// performance fields round-trip unchanged.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}

	return &r, nil
}
