package main

import (
	"reflect"
	"testing"
)

func getTestEntries() []ImageEntry {
	return []ImageEntry{
		{Path: "test/01.png"},
		{Path: "test/04.zip"},
		{Path: "test/08.png"},
		{Path: "test/09.png"},
		{Path: "test/2.png"},
		{Path: "test/３.png"},
	}
}

func getExpectedNaturalOrder() []ImageEntry {
	return []ImageEntry{
		{Path: "test/01.png"},
		{Path: "test/2.png"},
		{Path: "test/04.zip"},
		{Path: "test/08.png"},
		{Path: "test/09.png"},
		{Path: "test/３.png"},
	}
}

func getExpectedSimpleOrder() []ImageEntry {
	return []ImageEntry{
		{Path: "test/01.png"},
		{Path: "test/04.zip"},
		{Path: "test/08.png"},
		{Path: "test/09.png"},
		{Path: "test/2.png"},
		{Path: "test/３.png"},
	}
}

func TestNaturalSortStrategy(t *testing.T) {
	strategy := &NaturalSortStrategy{}
	result := strategy.Sort(getTestEntries())
	if !reflect.DeepEqual(result, getExpectedNaturalOrder()) {
		t.Errorf("Natural sort order wrong:\ngot  %v\nwant %v", result, getExpectedNaturalOrder())
	}
	if strategy.ID() != SortNatural {
		t.Errorf("ID() = %d, want %d", strategy.ID(), SortNatural)
	}
}

func TestSimpleSortStrategy(t *testing.T) {
	strategy := &SimpleSortStrategy{}
	result := strategy.Sort(getTestEntries())
	if !reflect.DeepEqual(result, getExpectedSimpleOrder()) {
		t.Errorf("Simple sort order wrong:\ngot  %v\nwant %v", result, getExpectedSimpleOrder())
	}
}

func TestEntryOrderSortStrategy(t *testing.T) {
	strategy := &EntryOrderSortStrategy{}
	input := getTestEntries()
	result := strategy.Sort(input)
	if !reflect.DeepEqual(result, input) {
		t.Errorf("Entry order must keep the discovered order")
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	input := getTestEntries()
	original := getTestEntries()
	sortEntries(input, SortNatural)
	if !reflect.DeepEqual(input, original) {
		t.Error("Sort must not modify the input slice")
	}
}

func TestGetSortStrategy(t *testing.T) {
	tests := []struct {
		method   int
		expected string
	}{
		{SortNatural, "Natural"},
		{SortSimple, "Simple"},
		{SortEntryOrder, "Entry Order"},
		{99, "Natural"}, // unknown falls back to natural
	}
	for _, tt := range tests {
		if got := GetSortStrategy(tt.method).Name(); got != tt.expected {
			t.Errorf("GetSortStrategy(%d).Name() = %s, want %s", tt.method, got, tt.expected)
		}
	}
}

func TestSortEmptySlice(t *testing.T) {
	result := sortEntries(nil, SortNatural)
	if len(result) != 0 {
		t.Errorf("sorting nil must return an empty slice")
	}
}
