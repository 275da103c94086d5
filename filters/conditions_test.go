package filters

import (
	"testing"

	. "github.com/fulldump/biff"

	"github.com/fulldump/dataview/dataview"
)

func fruits() []dataview.Item {
	return []dataview.Item{
		{"id": "apple", "color": "red", "price": 1.5},
		{"id": "banana", "color": "yellow", "price": 0.5},
		{"id": "cherry", "color": "red", "price": 4.0},
		{"id": "lemon", "color": "yellow", "price": 0.8},
	}
}

func visibleIds(dv *dataview.DataView) []any {
	ids := []any{}
	for _, row := range dv.GetRows() {
		if item, ok := row.(dataview.Item); ok {
			ids = append(ids, item["id"])
		}
	}
	return ids
}

func TestConditions(t *testing.T) {

	dv := dataview.New(dataview.Options{})
	AssertNil(dv.SetItems(fruits()))

	dv.SetFilterArgs(map[string]any{"color": "red"})
	dv.SetFilter(Conditions)
	AssertEqual(visibleIds(dv), []any{"apple", "cherry"})

	dv.SetFilterArgs(map[string]any{"price": map[string]any{"$gt": 1.0}})
	dv.Refresh()
	AssertEqual(visibleIds(dv), []any{"apple", "cherry"})

	dv.SetFilterArgs(map[string]any{"color": "yellow", "price": map[string]any{"$lt": 0.6}})
	dv.Refresh()
	AssertEqual(visibleIds(dv), []any{"banana"})

	dv.SetFilterArgs(nil)
	dv.Refresh()
	AssertEqual(len(visibleIds(dv)), 4)
}

func TestConditions_Inline(t *testing.T) {

	dv := dataview.New(dataview.Options{InlineFilters: true})
	AssertNil(dv.SetItems(fruits()))

	dv.SetFilterArgs(map[string]any{"color": map[string]any{"$in": []any{"yellow"}}})
	dv.SetFilter(Conditions)
	AssertEqual(visibleIds(dv), []any{"banana", "lemon"})
}

func TestMatch(t *testing.T) {

	filter := Match(map[string]any{"color": "yellow"})

	AssertTrue(filter(dataview.Item{"color": "yellow"}, nil))
	AssertFalse(filter(dataview.Item{"color": "red"}, map[string]any{"color": "red"}))
}

func TestCheck(t *testing.T) {

	match, err := Check(nil, dataview.Item{"a": 1})
	AssertNil(err)
	AssertTrue(match)

	match, err = Check(map[string]any{"id": "apple"}, fruits()[0])
	AssertNil(err)
	AssertTrue(match)
}
