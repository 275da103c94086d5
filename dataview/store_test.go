package dataview

import (
	"errors"
	"testing"

	. "github.com/fulldump/biff"
)

func TestSetItems(t *testing.T) {

	dv := New(Options{})
	r := record(dv)

	err := dv.SetItems([]Item{
		{"id": 1, "v": "a"},
		{"id": 2, "v": "b"},
		{"id": 3, "v": "c"},
	})
	AssertNil(err)

	AssertEqual(dv.GetLength(), 3)
	AssertEqual(dv.GetItemCount(), 3)
	AssertEqual(r.setItemsCalled, 1)
	AssertEqual(len(r.rowCountChanged), 1)
	AssertEqual(r.rowCountChanged[0].Previous, 0)
	AssertEqual(r.rowCountChanged[0].Current, 3)
	AssertEqual(len(r.rowsChanged), 1)
	AssertEqual(r.rowsChanged[0].Rows, []int{0, 1, 2})
	AssertEqual(len(r.rowsOrCountChanged), 1)

	idx, err := dv.GetIdxById(2)
	AssertNil(err)
	AssertEqual(idx, 1)
	AssertEqual(dv.GetItemById(3)["v"], "c")
}

func TestSetItems_DuplicateId(t *testing.T) {

	dv := newTestView(numbered(2)...)

	err := dv.SetItems([]Item{{"id": 1}, {"id": 1}})
	AssertTrue(errors.Is(err, ErrDuplicateId))
	AssertEqual(dv.GetItemCount(), 2)
}

func TestSetItems_MissingId(t *testing.T) {

	dv := New(Options{})

	err := dv.SetItems([]Item{{"id": 1}, {"name": "no id"}})
	AssertTrue(errors.Is(err, ErrMissingId))

	err = dv.SetItems([]Item{{"id": nil}})
	AssertTrue(errors.Is(err, ErrMissingId))
}

func TestSetItems_CustomIdProperty(t *testing.T) {

	dv := New(Options{})

	err := dv.SetItems([]Item{{"key": "x"}, {"key": "y"}}, "key")
	AssertNil(err)

	AssertEqual(dv.GetIdPropertyName(), "key")
	idx, err := dv.GetIdxById("y")
	AssertNil(err)
	AssertEqual(idx, 1)
}

func TestNumericIdsAreNormalized(t *testing.T) {

	dv := newTestView(numbered(3)...)

	idx, err := dv.GetIdxById(float64(2))
	AssertNil(err)
	AssertEqual(idx, 1)

	idx, err = dv.GetIdxById(int64(3))
	AssertNil(err)
	AssertEqual(idx, 2)

	err = dv.AddItem(Item{"id": 1.0})
	AssertTrue(errors.Is(err, ErrDuplicateId))
}

func TestAddItem(t *testing.T) {

	dv := newTestView(numbered(2)...)
	r := record(dv)

	AssertNil(dv.AddItem(Item{"id": 3}))

	AssertEqual(rowNames(dv), []any{1, 2, 3})
	idx, _ := dv.GetIdxById(3)
	AssertEqual(idx, 2)
	AssertEqual(r.rowsChanged[0].Rows, []int{2})
}

func TestAddItem_Duplicate(t *testing.T) {

	dv := newTestView(numbered(2)...)
	r := record(dv)

	err := dv.AddItem(Item{"id": 2})
	AssertTrue(errors.Is(err, ErrDuplicateId))
	AssertEqual(dv.GetItemCount(), 2)
	AssertEqual(len(r.rowsOrCountChanged), 0)

	err = dv.AddItems([]Item{{"id": 7}, {"id": 7}})
	AssertTrue(errors.Is(err, ErrDuplicateId))
	AssertEqual(dv.GetItemCount(), 2)
}

func TestInsertItem(t *testing.T) {

	dv := newTestView(numbered(3)...)

	AssertNil(dv.InsertItem(1, Item{"id": 10}))
	AssertEqual(rowNames(dv), []any{1, 10, 2, 3})

	for i, item := range dv.GetItems() {
		idx, err := dv.GetIdxById(item["id"])
		AssertNil(err)
		AssertEqual(idx, i)
	}

	AssertNil(dv.InsertItem(99, Item{"id": 11}))
	AssertEqual(rowNames(dv), []any{1, 10, 2, 3, 11})
}

func TestUpdateItem(t *testing.T) {

	dv := newTestView(numbered(3)...)
	r := record(dv)

	AssertNil(dv.UpdateItem(2, Item{"id": 2, "v": "changed"}))

	AssertEqual(dv.GetItemById(2)["v"], "changed")
	AssertEqual(len(r.rowsChanged), 1)
	AssertEqual(r.rowsChanged[0].Rows, []int{1})
	AssertEqual(len(r.rowCountChanged), 0)
}

func TestUpdateItem_ChangeId(t *testing.T) {

	dv := newTestView(numbered(3)...)

	AssertNil(dv.UpdateItem(2, Item{"id": 9, "v": 2}))

	_, err := dv.GetIdxById(2)
	AssertTrue(errors.Is(err, ErrInvalidId))
	idx, err := dv.GetIdxById(9)
	AssertNil(err)
	AssertEqual(idx, 1)
	AssertEqual(rowNames(dv), []any{1, 9, 3})
}

func TestUpdateItem_Errors(t *testing.T) {

	dv := newTestView(numbered(3)...)

	err := dv.UpdateItem(2, Item{"id": 3})
	AssertTrue(errors.Is(err, ErrDuplicateId))

	err = dv.UpdateItem(2, Item{"v": "no id"})
	AssertTrue(errors.Is(err, ErrMissingId))

	err = dv.UpdateItem(42, Item{"id": 42})
	AssertTrue(errors.Is(err, ErrInvalidId))

	AssertEqual(rowNames(dv), []any{1, 2, 3})
}

func TestUpdateItems(t *testing.T) {

	dv := newTestView(numbered(4)...)
	r := record(dv)

	err := dv.UpdateItems([]any{1, 4}, []Item{{"id": 1, "v": "x"}, {"id": 4, "v": "y"}})
	AssertNil(err)

	AssertEqual(len(r.rowsChanged), 1)
	AssertEqual(r.rowsChanged[0].Rows, []int{0, 3})

	err = dv.UpdateItems([]any{1}, []Item{})
	AssertTrue(errors.Is(err, ErrPrecondition))
}

func TestDeleteItem(t *testing.T) {

	dv := newTestView(numbered(4)...)
	r := record(dv)

	AssertNil(dv.DeleteItem(2))

	AssertEqual(rowNames(dv), []any{1, 3, 4})
	idx, _ := dv.GetIdxById(4)
	AssertEqual(idx, 2)
	AssertEqual(r.rowCountChanged[0].Current, 3)
	AssertEqual(r.rowsChanged[0].Rows, []int{1, 2, 3})
}

func TestDeleteItem_Unknown(t *testing.T) {

	dv := newTestView(numbered(2)...)

	err := dv.DeleteItem(5)
	AssertTrue(errors.Is(err, ErrInvalidId))

	err = dv.DeleteItems([]any{1, 5})
	AssertTrue(errors.Is(err, ErrInvalidId))
	AssertEqual(dv.GetItemCount(), 2)
}

func TestDeleteItems(t *testing.T) {

	dv := newTestView(numbered(6)...)

	AssertNil(dv.DeleteItems([]any{5, 2, 2, 1}))

	AssertEqual(rowNames(dv), []any{3, 4, 6})
	for i, item := range dv.GetItems() {
		idx, err := dv.GetIdxById(item["id"])
		AssertNil(err)
		AssertEqual(idx, i)
	}
}

func TestBulkUpdate(t *testing.T) {

	dv := newTestView(numbered(3)...)
	r := record(dv)

	dv.BeginUpdate(true)
	AssertNil(dv.DeleteItem(1))
	AssertNil(dv.DeleteItem(3))
	AssertNil(dv.AddItem(Item{"id": 4, "v": 4}))

	AssertEqual(len(r.rowsOrCountChanged), 0)

	AssertNil(dv.EndUpdate())

	AssertEqual(rowNames(dv), []any{2, 4})
	AssertEqual(len(r.rowsChanged), 1)
	AssertEqual(len(r.rowCountChanged), 1)
	AssertEqual(len(r.rowsOrCountChanged), 1)

	idx, _ := dv.GetIdxById(4)
	AssertEqual(idx, 1)
	_, err := dv.GetIdxById(1)
	AssertTrue(errors.Is(err, ErrInvalidId))
}

func TestBulkUpdate_ReAddPendingDelete(t *testing.T) {

	dv := newTestView(numbered(3)...)

	dv.BeginUpdate(true)
	AssertNil(dv.DeleteItem(2))

	err := dv.AddItem(Item{"id": 2})
	AssertTrue(errors.Is(err, ErrDuplicateId))

	AssertNil(dv.EndUpdate())
	AssertEqual(rowNames(dv), []any{1, 3})
}

func TestBulkUpdate_InsertKeepsLookupsConsistent(t *testing.T) {

	dv := newTestView(numbered(3)...)

	dv.BeginUpdate(true)
	AssertNil(dv.InsertItem(0, Item{"id": 0}))
	AssertNil(dv.InsertItem(2, Item{"id": 10}))

	idx, err := dv.GetIdxById(3)
	AssertNil(err)
	AssertEqual(idx, 4)

	AssertNil(dv.UpdateItem(2, Item{"id": 2, "v": "x"}))
	AssertEqual(dv.GetItemByIdx(3)["v"], "x")

	AssertNil(dv.EndUpdate())
	AssertEqual(rowNames(dv), []any{0, 1, 10, 2, 3})
}

func TestNonBulkUpdate(t *testing.T) {

	dv := newTestView(numbered(3)...)
	r := record(dv)

	dv.BeginUpdate(false)
	AssertNil(dv.DeleteItem(1))
	AssertNil(dv.AddItem(Item{"id": 4}))
	AssertEqual(dv.GetItemCount(), 3)
	AssertEqual(len(r.rowsOrCountChanged), 0)

	AssertNil(dv.EndUpdate())
	AssertEqual(rowNames(dv), []any{2, 3, 4})
	AssertEqual(len(r.rowsOrCountChanged), 1)
}

func TestDestroy(t *testing.T) {

	dv := newTestView(numbered(3)...)
	grid := newTestGrid(true)
	dv.SyncGridSelection(grid, false, false)

	dv.Destroy()

	AssertEqual(dv.GetLength(), 0)
	AssertEqual(dv.OnRowsOrCountChanged.Len(), 0)
	AssertEqual(grid.OnSelectedRowsChanged().Len(), 0)

	err := dv.AddItem(Item{"id": 1})
	AssertTrue(errors.Is(err, ErrPrecondition))
	AssertNil(dv.GetItemById(1))
}
