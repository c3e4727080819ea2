package models

// EmailRecord is the lightweight view of one unread message. Body text is
// never populated; HasBody only records whether the provider snippet was
// non-empty. Category is empty until categorization runs.
type EmailRecord struct {
	ID       string `json:"id"`
	ThreadID string `json:"thread_id"`
	From     string `json:"from,omitempty"`
	Subject  string `json:"subject,omitempty"`
	Date     string `json:"date,omitempty"`
	HasBody  bool   `json:"has_body"`
	Category string `json:"category,omitempty"`
}

// Grouping maps category labels to their records while remembering the order
// in which categories were first seen, so display and export stay stable.
type Grouping struct {
	order  []string
	groups map[string][]*EmailRecord
}

func NewGrouping() *Grouping {
	return &Grouping{
		groups: make(map[string][]*EmailRecord),
	}
}

func (g *Grouping) Add(record *EmailRecord) {
	if _, exists := g.groups[record.Category]; !exists {
		g.order = append(g.order, record.Category)
	}
	g.groups[record.Category] = append(g.groups[record.Category], record)
}

// Categories returns the category labels in first-seen order.
func (g *Grouping) Categories() []string {
	return g.order
}

// Records returns the records for a category in insertion order.
func (g *Grouping) Records(category string) []*EmailRecord {
	return g.groups[category]
}

// Len returns the total number of records across all categories.
func (g *Grouping) Len() int {
	total := 0
	for _, records := range g.groups {
		total += len(records)
	}
	return total
}

// GroupByCategory builds a fresh grouping from categorized records.
func GroupByCategory(records []*EmailRecord) *Grouping {
	grouping := NewGrouping()
	for _, record := range records {
		grouping.Add(record)
	}
	return grouping
}
