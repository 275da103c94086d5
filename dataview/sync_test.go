package dataview

import (
	"testing"

	. "github.com/fulldump/biff"
)

func TestSyncGridSelection_FollowsItems(t *testing.T) {

	dv := newTestView(numbered(4)...)
	grid := newTestGrid(true)
	dv.SyncGridSelection(grid, false, false)

	grid.SetSelectedRows([]int{0, 1})
	AssertEqual(dv.GetAllSelectedIds(), []any{1, 2})

	dv.Sort(FieldComparer("v"), false)

	AssertEqual(grid.GetSelectedRows(), []int{3, 2})
	AssertEqual(dv.GetAllSelectedIds(), []any{1, 2})
}

func TestSyncGridSelection_DropHidden(t *testing.T) {

	dv := newTestView(numbered(4)...)
	grid := newTestGrid(true)
	dv.SyncGridSelection(grid, false, false)
	r := record(dv)

	grid.SetSelectedRows([]int{0, 3})
	AssertEqual(len(r.selectedRowIdsChange), 1)

	dv.SetFilterArgs(1)
	dv.SetFilter(greaterThan)

	AssertEqual(dv.GetAllSelectedIds(), []any{4})
	AssertEqual(grid.GetSelectedRows(), []int{2})

	dv.SetFilter(nil)
	AssertEqual(grid.GetSelectedRows(), []int{3})
}

func TestSyncGridSelection_PreserveHidden(t *testing.T) {

	dv := newTestView(numbered(4)...)
	grid := newTestGrid(true)
	dv.SyncGridSelection(grid, true, true)

	grid.SetSelectedRows([]int{0, 3})

	dv.SetFilterArgs(1)
	dv.SetFilter(greaterThan)

	AssertEqual(grid.GetSelectedRows(), []int{2})
	AssertEqual(dv.GetAllSelectedIds(), []any{1, 4})
	AssertEqual(dv.GetAllSelectedFilteredIds(), []any{4})

	// a selection made in the grid keeps the hidden item
	grid.SetSelectedRows([]int{0, 2})
	AssertEqual(dv.GetAllSelectedIds(), []any{1, 2, 4})

	dv.SetFilter(nil)
	AssertEqual(grid.GetSelectedRows(), []int{0, 1, 3})
	AssertEqual(len(dv.GetAllSelectedItems()), 3)
}

func TestSetSelectedIds(t *testing.T) {

	dv := newTestView(numbered(4)...)
	grid := newTestGrid(true)
	dv.SyncGridSelection(grid, true, true)
	r := record(dv)

	dv.SetSelectedIds([]any{2, 3}, SetSelectedIdsOptions{})
	AssertEqual(dv.GetAllSelectedIds(), []any{2, 3})
	AssertEqual(grid.GetSelectedRows(), []int{1, 2})
	AssertEqual(len(r.selectedRowIdsChange), 1)
	AssertTrue(r.selectedRowIdsChange[0].Added)

	dv.SetSelectedIds([]any{2}, SetSelectedIdsOptions{Removing: true, SkipEvent: true})
	AssertEqual(dv.GetAllSelectedIds(), []any{3})
	AssertEqual(grid.GetSelectedRows(), []int{2})
	AssertEqual(len(r.selectedRowIdsChange), 1)

	dv.SetSelectedIds([]any{1}, SetSelectedIdsOptions{SkipGridUpdate: true})
	AssertEqual(grid.GetSelectedRows(), []int{2})
}

func TestSetSelectedIds_WithoutGrid(t *testing.T) {

	dv := newTestView(numbered(4)...)

	dv.SetSelectedIds([]any{1, 2}, SetSelectedIdsOptions{})
	dv.SetSelectedIds([]any{2, 3}, SetSelectedIdsOptions{})
	AssertEqual(dv.GetAllSelectedIds(), []any{1, 2, 3})

	dv.SetSelectedIds([]any{1}, SetSelectedIdsOptions{Removing: true})
	AssertEqual(dv.GetAllSelectedIds(), []any{2, 3})
	AssertEqual(len(dv.GetAllSelectedFilteredItems()), 2)
}

func TestSyncGridCellCssStyles(t *testing.T) {

	dv := newTestView(numbered(3)...)
	grid := newTestGrid(true)
	dv.SyncGridCellCssStyles(grid, "highlight")

	grid.SetCellCssStyles("highlight", map[int]StyleHash{0: {"v": "hot"}})
	grid.SetCellCssStyles("other", map[int]StyleHash{1: {"v": "cold"}})

	dv.Sort(FieldComparer("v"), false)
	AssertEqual(grid.GetCellCssStyles("highlight"), map[int]StyleHash{2: {"v": "hot"}})
	AssertEqual(grid.GetCellCssStyles("other"), map[int]StyleHash{1: {"v": "cold"}})

	dv.SetFilterArgs(1)
	dv.SetFilter(greaterThan)
	AssertEqual(grid.GetCellCssStyles("highlight"), map[int]StyleHash{})

	// removing the key stops the synchronization
	grid.SetCellCssStyles("highlight", nil)
	dv.SetFilter(nil)
	AssertNil(grid.GetCellCssStyles("highlight"))
	AssertEqual(grid.OnCellCssStylesChanged().Len(), 0)
}
