package exporter

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/xaenox/inbox-triage/internal/models"
	"go.uber.org/zap"
)

var csvHeader = []string{"Category", "From", "Subject", "Date", "Has Body"}

type Exporter struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Exporter {
	return &Exporter{logger: logger}
}

// Export writes one CSV row per record, overwriting any existing file.
// I/O errors are logged and reported as a boolean failure, never propagated.
func (e *Exporter) Export(grouping *models.Grouping, path string) bool {
	f, err := os.Create(path)
	if err != nil {
		e.logger.Error("Failed to create export file",
			zap.Error(err),
			zap.String("path", path))
		return false
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		e.logger.Error("Failed to write header", zap.Error(err), zap.String("path", path))
		return false
	}

	for _, category := range grouping.Categories() {
		for _, record := range grouping.Records(category) {
			row := []string{
				category,
				valueOr(record.From, "Unknown"),
				valueOr(record.Subject, "No subject"),
				valueOr(record.Date, "Unknown"),
				strconv.FormatBool(record.HasBody),
			}
			if err := w.Write(row); err != nil {
				e.logger.Error("Failed to write row",
					zap.Error(err),
					zap.String("path", path),
					zap.String("message_id", record.ID))
				return false
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		e.logger.Error("Failed to flush export file", zap.Error(err), zap.String("path", path))
		return false
	}
	return true
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
