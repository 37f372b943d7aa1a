package itemfetch

import (
	"reflect"
	"testing"
)

func TestFilterActive_Threshold(t *testing.T) {
	items := []Item{
		{ID: "1", Name: "first", Active: true, Score: 10},
		{ID: "2", Name: "second", Active: true, Score: 2},
		{ID: "3", Name: "third", Active: false, Score: 9},
	}

	got := FilterActive(items, 3)
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("FilterActive() = %+v, want exactly the first item", got)
	}
}

func TestFilterActive_ThresholdIsStrict(t *testing.T) {
	items := []Item{{ID: "1", Name: "edge", Active: true, Score: 3}}
	if got := FilterActive(items, 3); len(got) != 0 {
		t.Errorf("score equal to threshold must be excluded, got %+v", got)
	}
}

func TestFilterActive_PreservesOrder(t *testing.T) {
	items := []Item{
		{ID: "b", Active: true, Score: 5},
		{ID: "a", Active: true, Score: 9},
		{ID: "c", Active: true, Score: 7},
	}
	got := FilterActive(items, 0)
	if got[0].ID != "b" || got[1].ID != "a" || got[2].ID != "c" {
		t.Errorf("FilterActive() reordered items: %+v", got)
	}
}

func TestDisplayNames(t *testing.T) {
	items := []Item{
		{Name: "widget"},
		{Name: "Gadget"},
	}
	got := DisplayNames(items)
	want := []string{"WIDGET", "GADGET"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DisplayNames() = %v, want %v", got, want)
	}
}

func TestSortByScore(t *testing.T) {
	items := []Item{
		{ID: "low", Score: 1},
		{ID: "high", Score: 9},
		{ID: "mid", Score: 5},
	}
	got := SortByScore(items)
	if got[0].ID != "high" || got[1].ID != "mid" || got[2].ID != "low" {
		t.Errorf("SortByScore() = %+v, want descending by score", got)
	}
	if items[0].ID != "low" {
		t.Error("SortByScore() must not mutate its input")
	}
}

func TestSummarize(t *testing.T) {
	items := []Item{
		{Active: true, Score: 10},
		{Active: true, Score: 2},
		{Active: false, Score: 9},
	}
	got := Summarize(items)
	if got.Total != 3 {
		t.Errorf("Total = %d, want 3", got.Total)
	}
	if got.Active != 2 {
		t.Errorf("Active = %d, want 2", got.Active)
	}
	if got.MaxScore != 10 {
		t.Errorf("MaxScore = %v, want 10", got.MaxScore)
	}
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil)
	if got.Total != 0 || got.Active != 0 || got.MaxScore != 0 {
		t.Errorf("Summarize(nil) = %+v, want zero value", got)
	}
}
