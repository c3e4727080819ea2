package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupByCategory(t *testing.T) {
	t.Run("should preserve first-seen category order", func(t *testing.T) {
		grouping := GroupByCategory([]*EmailRecord{
			{ID: "1", Category: "b"},
			{ID: "2", Category: "a"},
			{ID: "3", Category: "b"},
		})

		assert.Equal(t, []string{"b", "a"}, grouping.Categories())
		assert.Len(t, grouping.Records("b"), 2)
		assert.Len(t, grouping.Records("a"), 1)
		assert.Equal(t, 3, grouping.Len())
	})

	t.Run("should preserve record order within a category", func(t *testing.T) {
		grouping := GroupByCategory([]*EmailRecord{
			{ID: "1", Category: "a"},
			{ID: "2", Category: "a"},
		})

		records := grouping.Records("a")
		assert.Equal(t, "1", records[0].ID)
		assert.Equal(t, "2", records[1].ID)
	})

	t.Run("should build independent groupings per call", func(t *testing.T) {
		records := []*EmailRecord{{ID: "1", Category: "a"}}

		first := GroupByCategory(records)
		second := GroupByCategory(records)
		second.Add(&EmailRecord{ID: "2", Category: "a"})

		assert.Len(t, first.Records("a"), 1)
		assert.Len(t, second.Records("a"), 2)
	})

	t.Run("should handle no records", func(t *testing.T) {
		grouping := GroupByCategory(nil)

		assert.Empty(t, grouping.Categories())
		assert.Equal(t, 0, grouping.Len())
	})
}
