package dataview

import (
	"fmt"
)

func newTestView(items ...Item) *DataView {
	dv := New(Options{})
	if err := dv.SetItems(items); err != nil {
		panic(err)
	}
	return dv
}

func numbered(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{"id": i + 1, "v": i + 1}
	}
	return items
}

// rowNames describes the visible rows: item ids, "G:<title>" for group
// headers and "T:<title>" for totals.
func rowNames(dv *DataView) []any {
	names := []any{}
	for i := 0; i < dv.GetLength(); i++ {
		switch r := dv.GetItem(i).(type) {
		case Item:
			names = append(names, r[dv.GetIdPropertyName()])
		case *Group:
			names = append(names, "G:"+r.Title)
		case *GroupTotals:
			names = append(names, "T:"+r.Group.Title)
		default:
			names = append(names, fmt.Sprintf("%v", r))
		}
	}
	return names
}

type eventRecorder struct {
	rowCountChanged      []RowCountChangedArgs
	rowsChanged          []RowsChangedArgs
	rowsOrCountChanged   []RowsOrCountChangedArgs
	pagingInfoChanged    []PagingInfo
	setItemsCalled       int
	groupCollapsed       []GroupToggledArgs
	groupExpanded        []GroupToggledArgs
	selectedRowIdsChange []SelectedRowIdsChangedArgs
}

func record(dv *DataView) *eventRecorder {
	r := &eventRecorder{}
	dv.OnRowCountChanged.Subscribe(func(args RowCountChangedArgs) {
		r.rowCountChanged = append(r.rowCountChanged, args)
	})
	dv.OnRowsChanged.Subscribe(func(args RowsChangedArgs) {
		r.rowsChanged = append(r.rowsChanged, args)
	})
	dv.OnRowsOrCountChanged.Subscribe(func(args RowsOrCountChangedArgs) {
		r.rowsOrCountChanged = append(r.rowsOrCountChanged, args)
	})
	dv.OnPagingInfoChanged.Subscribe(func(args PagingInfo) {
		r.pagingInfoChanged = append(r.pagingInfoChanged, args)
	})
	dv.OnSetItemsCalled.Subscribe(func(args SetItemsCalledArgs) {
		r.setItemsCalled++
	})
	dv.OnGroupCollapsed.Subscribe(func(args GroupToggledArgs) {
		r.groupCollapsed = append(r.groupCollapsed, args)
	})
	dv.OnGroupExpanded.Subscribe(func(args GroupToggledArgs) {
		r.groupExpanded = append(r.groupExpanded, args)
	})
	dv.OnSelectedRowIdsChanged.Subscribe(func(args SelectedRowIdsChangedArgs) {
		r.selectedRowIdsChange = append(r.selectedRowIdsChange, args)
	})
	return r
}

func (r *eventRecorder) reset() {
	*r = eventRecorder{}
}

// testGrid is a minimal grid keeping a selection and cell styles.
type testGrid struct {
	multiSelect     bool
	selectedRows    []int
	cellStyles      map[string]map[int]StyleHash
	onSelectedRows  *Event[SelectedRowsChangedArgs]
	onCellCssStyles *Event[CellCssStylesChangedArgs]
}

func newTestGrid(multiSelect bool) *testGrid {
	return &testGrid{
		multiSelect:     multiSelect,
		selectedRows:    []int{},
		cellStyles:      map[string]map[int]StyleHash{},
		onSelectedRows:  NewEvent[SelectedRowsChangedArgs](),
		onCellCssStyles: NewEvent[CellCssStylesChangedArgs](),
	}
}

func (g *testGrid) GetSelectedRows() []int {
	return g.selectedRows
}

func (g *testGrid) SetSelectedRows(rows []int) {
	g.selectedRows = rows
	g.onSelectedRows.Notify(SelectedRowsChangedArgs{Rows: rows})
}

func (g *testGrid) MultiSelect() bool {
	return g.multiSelect
}

func (g *testGrid) OnSelectedRowsChanged() *Event[SelectedRowsChangedArgs] {
	return g.onSelectedRows
}

func (g *testGrid) GetCellCssStyles(key string) map[int]StyleHash {
	return g.cellStyles[key]
}

func (g *testGrid) SetCellCssStyles(key string, hash map[int]StyleHash) {
	if hash == nil {
		delete(g.cellStyles, key)
	} else {
		g.cellStyles[key] = hash
	}
	g.onCellCssStyles.Notify(CellCssStylesChangedArgs{Key: key, Hash: hash})
}

func (g *testGrid) OnCellCssStylesChanged() *Event[CellCssStylesChangedArgs] {
	return g.onCellCssStyles
}
