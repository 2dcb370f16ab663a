package main

import (
	"sort"

	"github.com/maruel/natural"
)

// SortStrategy orders the collection before navigation begins. The viewer
// core never re-sorts; ordering is fixed at collection time.
type SortStrategy interface {
	// Sort returns a new sorted slice without modifying the original
	Sort(entries []ImageEntry) []ImageEntry
	// Name returns the human-readable name of the strategy
	Name() string
	// ID returns the numeric identifier for config storage
	ID() int
}

// NaturalSortStrategy orders paths with embedded numbers the way humans
// expect (file2 before file10).
type NaturalSortStrategy struct{}

func (s *NaturalSortStrategy) Sort(entries []ImageEntry) []ImageEntry {
	result := copyEntries(entries)
	sort.Slice(result, func(i, j int) bool {
		return natural.Less(result[i].Path, result[j].Path)
	})
	return result
}

func (s *NaturalSortStrategy) Name() string { return "Natural" }
func (s *NaturalSortStrategy) ID() int      { return SortNatural }

// SimpleSortStrategy orders paths lexicographically.
type SimpleSortStrategy struct{}

func (s *SimpleSortStrategy) Sort(entries []ImageEntry) []ImageEntry {
	result := copyEntries(entries)
	sort.Slice(result, func(i, j int) bool {
		return result[i].Path < result[j].Path
	})
	return result
}

func (s *SimpleSortStrategy) Name() string { return "Simple" }
func (s *SimpleSortStrategy) ID() int      { return SortSimple }

// EntryOrderSortStrategy keeps the order entries were discovered in
// (command line order, archive member order).
type EntryOrderSortStrategy struct{}

func (s *EntryOrderSortStrategy) Sort(entries []ImageEntry) []ImageEntry {
	return copyEntries(entries)
}

func (s *EntryOrderSortStrategy) Name() string { return "Entry Order" }
func (s *EntryOrderSortStrategy) ID() int      { return SortEntryOrder }

func copyEntries(entries []ImageEntry) []ImageEntry {
	if len(entries) == 0 {
		return []ImageEntry{}
	}
	result := make([]ImageEntry, len(entries))
	copy(result, entries)
	return result
}

// GetSortStrategy returns the strategy for a sort method ID, defaulting to
// natural order.
func GetSortStrategy(sortMethod int) SortStrategy {
	switch sortMethod {
	case SortSimple:
		return &SimpleSortStrategy{}
	case SortEntryOrder:
		return &EntryOrderSortStrategy{}
	default:
		return &NaturalSortStrategy{}
	}
}

// sortEntries applies the configured strategy and returns a new slice.
func sortEntries(entries []ImageEntry, sortMethod int) []ImageEntry {
	return GetSortStrategy(sortMethod).Sort(entries)
}
