package service

import (
	"testing"

	"railbird/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestSortCurrentEntriesSeatedFirst(t *testing.T) {
	entries := []models.CurrentListEntry{
		{ID: 1, LastName: "Zimmer", State: models.StateLeft},
		{ID: 2, LastName: "Adams", State: models.StateLeft},
		{ID: 3, LastName: "Young", State: models.StateSeated},
		{ID: 4, LastName: "Baker", State: models.StateSeated},
	}

	SortCurrentEntries(entries)

	// Seated players lead the list, each group A-Z by last name
	assert.Equal(t, []int64{4, 3, 2, 1}, ids(entries))
	assert.Equal(t, models.StateSeated, entries[0].State)
	assert.Equal(t, models.StateSeated, entries[1].State)
	assert.Equal(t, models.StateLeft, entries[2].State)
	assert.Equal(t, models.StateLeft, entries[3].State)
}

func TestSortCurrentEntriesStableTies(t *testing.T) {
	// Equal last names keep their insertion order
	entries := []models.CurrentListEntry{
		{ID: 10, LastName: "Chen", State: models.StateSeated},
		{ID: 11, LastName: "Chen", State: models.StateSeated},
		{ID: 12, LastName: "Chen", State: models.StateSeated},
	}

	SortCurrentEntries(entries)

	assert.Equal(t, []int64{10, 11, 12}, ids(entries))
}

func TestSortCurrentEntriesEmpty(t *testing.T) {
	var entries []models.CurrentListEntry
	SortCurrentEntries(entries)
	assert.Empty(t, entries)
}

func ids(entries []models.CurrentListEntry) []int64 {
	out := make([]int64, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}
