package classifier

import "github.com/xaenox/inbox-triage/internal/models"

// Uncategorized is the label every record receives when categorization
// fails as a whole.
const Uncategorized = "Uncategorized"

// Classifier assigns exactly one non-empty category label to every record.
// Implementations never return an error: a failed run falls back to
// Uncategorized for all records.
type Classifier interface {
	Categorize(records []*models.EmailRecord) []*models.EmailRecord
}

func assignFallback(records []*models.EmailRecord) []*models.EmailRecord {
	for _, record := range records {
		record.Category = Uncategorized
	}
	return records
}
