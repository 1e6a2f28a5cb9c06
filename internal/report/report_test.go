package report_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/ember/internal/domain"
	"github.com/davidbz/ember/internal/report"
)

func TestReport_SaveLoadRoundTrip(t *testing.T) {
	stats := domain.NewUsageStats()
	stats.RecordSuccess(&domain.MessageResponse{
		Usage: &domain.Usage{TotalTokens: 100},
	})

	results := []*domain.MessageResponse{
		{
			ID:      "msg-1",
			Model:   "claude-opus-4-1-20250805",
			Content: []domain.ContentBlock{{Type: "text", Text: "first"}},
			Usage:   &domain.Usage{TotalTokens: 100},
		},
		nil, // A failed batch slot survives persistence.
		{
			ID:      "msg-3",
			Content: []domain.ContentBlock{{Type: "text", Text: "third"}},
		},
	}

	original := report.New("claude-opus-4-1-20250805", results, stats.Summarize())
	path := filepath.Join(t.TempDir(), "results.json")

	require.NoError(t, report.Save(context.Background(), path, original))

	loaded, err := report.Load(path)
	require.NoError(t, err)

	require.True(t, loaded.Timestamp.Equal(original.Timestamp))
	require.Equal(t, original.Model, loaded.Model)
	require.Len(t, loaded.Results, 3)
	require.Equal(t, "msg-1", loaded.Results[0].ID)
	require.Nil(t, loaded.Results[1])
	require.Equal(t, "third", loaded.Results[2].Text())
	require.Equal(t, original.Performance, loaded.Performance)
	require.Equal(t, 1, loaded.Performance.TotalRequests)
}

func TestReport_SaveWritesIndentedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	r := report.New("test-model", nil, domain.Summary{Message: domain.NoRequestsMessage})

	require.NoError(t, report.Save(context.Background(), path, r))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "\n  \"model\": \"test-model\"")
	require.Contains(t, string(data), domain.NoRequestsMessage)
}

func TestReport_LoadMissingFile(t *testing.T) {
	_, err := report.Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestReport_LoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := report.Load(path)
	require.Error(t, err)
}

func TestReport_New_StampsCurrentTime(t *testing.T) {
	before := time.Now()
	r := report.New("m", nil, domain.Summary{})
	after := time.Now()

	require.False(t, r.Timestamp.Before(before))
	require.False(t, r.Timestamp.After(after))
}
