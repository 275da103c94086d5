package filters

import (
	"testing"

	. "github.com/fulldump/biff"

	"github.com/fulldump/dataview/dataview"
)

func TestSearch(t *testing.T) {

	dv := dataview.New(dataview.Options{})
	AssertNil(dv.SetItems(fruits()))

	dv.SetFilterArgs("E")
	dv.SetFilter(Search("id"))
	AssertEqual(visibleIds(dv), []any{"apple", "cherry", "lemon"})

	dv.SetFilterArgs("ye")
	dv.SetFilter(Search())
	AssertEqual(visibleIds(dv), []any{"banana", "lemon"})

	dv.SetFilterArgs("")
	dv.Refresh()
	AssertEqual(len(visibleIds(dv)), 4)
}

func TestSearch_WithHints(t *testing.T) {

	dv := dataview.New(dataview.Options{})
	AssertNil(dv.SetItems(fruits()))
	dv.SetFilter(Search("id", "color"))

	previous := ""
	for _, term := range []string{"r", "re", "red", "re", "e", ""} {
		dv.SetFilterArgs(term)
		dv.SetRefreshHints(SearchHints(previous, term))
		dv.Refresh()
		previous = term

		expected := []any{}
		for _, item := range fruits() {
			if Search("id", "color")(item, term) {
				expected = append(expected, item["id"])
			}
		}
		AssertEqual(visibleIds(dv), expected)
	}
}

func TestSearchHints(t *testing.T) {

	AssertEqual(SearchHints("ap", "app"), dataview.RefreshHints{IsFilterNarrowing: true})
	AssertEqual(SearchHints("app", "a"), dataview.RefreshHints{IsFilterExpanding: true})
	AssertEqual(SearchHints("App", "app "), dataview.RefreshHints{IsFilterUnchanged: true})
	AssertEqual(SearchHints("apple", "lemon"), dataview.RefreshHints{})
}
