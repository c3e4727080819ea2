package report

import (
	"fmt"
	"io"

	"github.com/xaenox/inbox-triage/internal/models"
)

const maxSamplesPerCategory = 3

// PrintSummary writes the grouped category summary with up to three sample
// messages per category and an overflow count.
func PrintSummary(w io.Writer, grouping *models.Grouping) {
	fmt.Fprintln(w, "\n===== Email Categories =====")

	for _, category := range grouping.Categories() {
		records := grouping.Records(category)
		fmt.Fprintf(w, "\n%s (%d emails):\n", category, len(records))

		for i, record := range records {
			if i >= maxSamplesPerCategory {
				break
			}
			fmt.Fprintf(w, "  - From: %s\n", valueOr(record.From, "Unknown"))
			fmt.Fprintf(w, "    Subject: %s\n", valueOr(record.Subject, "No subject"))
			fmt.Fprintf(w, "    Date: %s\n", valueOr(record.Date, "Unknown"))
			fmt.Fprintln(w)
		}

		if len(records) > maxSamplesPerCategory {
			fmt.Fprintf(w, "  ... and %d more emails in this category.\n", len(records)-maxSamplesPerCategory)
		}
	}
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
