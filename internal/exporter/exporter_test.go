package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaenox/inbox-triage/internal/models"
	"go.uber.org/zap"
)

func testGrouping() *models.Grouping {
	return models.GroupByCategory([]*models.EmailRecord{
		{ID: "1", From: "billing@example.com", Subject: "Invoice due", Date: "Mon, 31 Aug 2026", HasBody: true, Category: "Category 1: invoice"},
		{ID: "2", From: "billing@example.com", Subject: "Invoice reminder", Date: "Tue, 01 Sep 2026", HasBody: true, Category: "Category 1: invoice"},
		{ID: "3", HasBody: false, Category: "Category 2: meeting"},
	})
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExport(t *testing.T) {
	logger := zap.NewNop()

	t.Run("should write header plus one row per record", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.csv")

		ok := New(logger).Export(testGrouping(), path)

		require.True(t, ok)
		rows := readRows(t, path)
		require.Len(t, rows, 4)
		assert.Equal(t, []string{"Category", "From", "Subject", "Date", "Has Body"}, rows[0])
		assert.Equal(t, []string{"Category 1: invoice", "billing@example.com", "Invoice due", "Mon, 31 Aug 2026", "true"}, rows[1])
	})

	t.Run("should default missing fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.csv")

		require.True(t, New(logger).Export(testGrouping(), path))

		rows := readRows(t, path)
		assert.Equal(t, []string{"Category 2: meeting", "Unknown", "No subject", "Unknown", "false"}, rows[3])
	})

	t.Run("should overwrite an existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.csv")
		require.NoError(t, os.WriteFile(path, []byte("stale content\nstale row\n"), 0644))

		require.True(t, New(logger).Export(testGrouping(), path))

		rows := readRows(t, path)
		assert.Len(t, rows, 4)
	})

	t.Run("should report failure instead of propagating errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "out.csv")

		ok := New(logger).Export(testGrouping(), path)

		assert.False(t, ok)
	})
}
