package service

import (
	"errors"
	"slices"
	"testing"

	. "github.com/fulldump/biff"

	"github.com/fulldump/dataview/dataview"
)

func newPlayersView() *View {
	view, _ := NewService(ViewOptions{MultiSelect: true}).CreateView("players", nil)
	items := []dataview.Item{}
	for _, p := range players {
		items = append(items, dataview.Item{
			"id":    float64(p["id"].(int)),
			"name":  p["name"],
			"team":  p["team"],
			"score": float64(p["score"].(int)),
		})
	}
	view.SetItems(items, "")
	return view
}

func viewIds(view *View) []any {
	ids := []any{}
	page, _ := view.Rows(0, 0)
	for _, row := range page.Rows {
		if row.Kind == RowKindItem {
			ids = append(ids, row.Item["id"])
		}
	}
	return ids
}

func TestPatchItem(t *testing.T) {

	item := dataview.Item{
		"id":   1.0,
		"name": "Ada",
		"tags": []any{"a"},
	}

	patched, err := patchItem(item, map[string]any{
		"address.city": "Paris",
		"tags.-1":      "b",
	}, []string{"name"})

	AssertNil(err)
	AssertEqual(patched, dataview.Item{
		"id":      1.0,
		"tags":    []any{"a", "b"},
		"address": map[string]any{"city": "Paris"},
	})
	AssertEqual(item["name"], "Ada")
}

func TestServiceViews(t *testing.T) {

	s := NewService(ViewOptions{})

	a, err := s.CreateView("b", nil)
	AssertNil(err)
	AssertEqual(a.Name, "b")

	_, err = s.CreateView("b", nil)
	AssertEqual(err, ErrorViewAlreadyExists)

	generated, err := s.CreateView("", &ViewOptions{MultiSelect: true})
	AssertNil(err)
	AssertEqual(len(generated.Name), 36)
	AssertTrue(generated.Options.MultiSelect)

	_, err = s.CreateView("a", nil)
	AssertNil(err)

	names := []string{}
	for _, view := range s.ListViews() {
		names = append(names, view.Name)
	}
	AssertEqual(len(names), 3)
	AssertTrue(slices.IsSorted(names))

	AssertNil(s.DeleteView("b"))
	AssertEqual(s.DeleteView("b"), ErrorViewNotFound)

	_, err = s.GetView("b")
	AssertEqual(err, ErrorViewNotFound)

	_, err = a.Info()
	AssertEqual(err, ErrorViewNotFound)
}

func TestViewSearchHints(t *testing.T) {

	view := newPlayersView()

	AssertNil(view.SetFilter(FilterRequest{Search: "d"}))
	AssertEqual(viewIds(view), []any{1.0, 3.0, 4.0})

	AssertNil(view.SetFilter(FilterRequest{Search: "da"}))
	AssertEqual(viewIds(view), []any{1.0, 4.0})

	AssertNil(view.SetFilter(FilterRequest{Search: "d"}))
	AssertEqual(viewIds(view), []any{1.0, 3.0, 4.0})

	AssertNil(view.SetFilter(FilterRequest{}))
	AssertEqual(viewIds(view), []any{1.0, 2.0, 3.0, 4.0})
}

func TestViewUpdateChangingId(t *testing.T) {

	view := newPlayersView()
	AssertNil(view.Sort(SortRequest{Field: "score"}))

	err := view.UpdateItem(2.0, dataview.Item{"id": 20.0, "name": "Bob", "score": 11.0})
	AssertNil(err)
	AssertEqual(viewIds(view), []any{3.0, 1.0, 20.0, 4.0})
}

func TestViewDeleteItems(t *testing.T) {

	view := newPlayersView()

	AssertNil(view.DeleteItems([]any{1.0, 4.0}))
	AssertEqual(viewIds(view), []any{2.0, 3.0})

	err := view.DeleteItems([]any{2.0, 99.0})
	AssertTrue(errors.Is(err, dataview.ErrInvalidId))
	AssertEqual(err.Error(), "invalid id: 99")
	AssertEqual(viewIds(view), []any{2.0, 3.0})

	AssertNil(view.DeleteItems([]any{2.0, 3.0}))
	AssertEqual(viewIds(view), []any{})
}

func TestViewCellStyles(t *testing.T) {

	view := newPlayersView()

	err := view.SetCellStyles("warn", []CellStyle{{Id: 1.0, Columns: dataview.StyleHash{"score": "high"}}})
	AssertNil(err)
	AssertEqual(view.grid.stylesOf(0), map[string]dataview.StyleHash{"warn": {"score": "high"}})

	AssertNil(view.Sort(SortRequest{Field: "score", Descending: true}))
	AssertEqual(view.grid.stylesOf(0), map[string]dataview.StyleHash(nil))
	AssertEqual(view.grid.stylesOf(1), map[string]dataview.StyleHash{"warn": {"score": "high"}})

	AssertNil(view.SetCellStyles("warn", nil))
	AssertNil(view.Sort(SortRequest{Field: "score"}))
	AssertEqual(len(view.grid.cellStyles), 0)

	err = view.SetCellStyles("warn", []CellStyle{{Id: 99.0}})
	AssertTrue(errors.Is(err, dataview.ErrInvalidId))
}

func TestViewToggleGroup(t *testing.T) {

	view := newPlayersView()

	err := view.ToggleGroup(ToggleRequest{All: true}, true)
	AssertTrue(errors.Is(err, dataview.ErrPrecondition))

	AssertNil(view.SetGrouping([]GroupingLevel{{Field: "team"}}))

	level := 0
	AssertNil(view.ToggleGroup(ToggleRequest{All: true, Level: &level}, true))
	info, _ := view.Info()
	AssertEqual(info.Rows, 2)

	AssertNil(view.ToggleGroup(ToggleRequest{Path: []any{"red"}}, false))
	info, _ = view.Info()
	AssertEqual(info.Rows, 4)

	err = view.ToggleGroup(ToggleRequest{}, false)
	AssertTrue(errors.Is(err, dataview.ErrPrecondition))
}

func TestViewPagingVeto(t *testing.T) {

	view := newPlayersView()
	view.Do(func(dv *dataview.DataView) error {
		dv.OnBeforePagingInfoChanged.Subscribe(func(dataview.PagingInfo) bool {
			return false
		})
		return nil
	})

	size := 2
	info, applied, err := view.SetPaging(dataview.PagingOptions{PageSize: &size})
	AssertNil(err)
	AssertFalse(applied)
	AssertEqual(info.PageSize, 0)
}
