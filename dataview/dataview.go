package dataview

import (
	"github.com/RoaringBitmap/roaring/v2"
)

const DefaultIdProperty = "id"

type Options struct {
	// GroupItemMetadataProvider answers metadata for group and totals rows.
	// SetGrouping installs NewGroupItemMetadataProvider when it is nil.
	GroupItemMetadataProvider GroupItemMetadataProvider

	// GlobalItemMetadataProvider answers metadata for data rows.
	GlobalItemMetadataProvider ItemMetadataProvider

	// InlineFilters compiles the filter into a dedicated batch loop.
	InlineFilters bool
}

// DataView sits between an item collection and a grid: it filters, sorts,
// groups and pages the items into a flat row list and reports exactly which
// rows changed after every mutation.
//
// A DataView is not safe for concurrent use. Callers sharing one across
// goroutines must serialize access.
type DataView struct {
	options    Options
	idProperty string

	items   []Item
	idxById map[any]int
	rows    []Row
	// rowsById is built lazily from rows, nil means stale
	rowsById map[any]int
	updated  map[any]struct{}

	suspend bool
	batch   *batch

	filter                    Filter
	filterArgs                any
	filteredItems             []Item
	compiledFilter            batchFilter
	compiledFilterWithCaching cachingBatchFilter
	filterCache               *roaring.Bitmap

	sortAsc       bool
	sortComparer  Comparer
	fastSortField string

	refreshHints     RefreshHints
	prevRefreshHints RefreshHints

	groupingInfos        []*GroupingInfo
	groups               []*Group
	toggledGroupsByLevel []map[string]bool

	pageSize  int
	pageNum   int
	totalRows int

	selectedRowIds     []any
	selectionGrid      SelectionGrid
	selectionInHandler bool
	selectionChange    func(c selectionChange)
	syncSubscriptions  []*Subscription

	OnSetItemsCalled          *Event[SetItemsCalledArgs]
	OnRowCountChanged         *Event[RowCountChangedArgs]
	OnRowsChanged             *Event[RowsChangedArgs]
	OnRowsOrCountChanged      *Event[RowsOrCountChangedArgs]
	OnBeforePagingInfoChanged *CancelableEvent[PagingInfo]
	OnPagingInfoChanged       *Event[PagingInfo]
	OnGroupExpanded           *Event[GroupToggledArgs]
	OnGroupCollapsed          *Event[GroupToggledArgs]
	OnSelectedRowIdsChanged   *Event[SelectedRowIdsChangedArgs]
}

type SetItemsCalledArgs struct {
	IdProperty string
	ItemCount  int
}

type RowCountChangedArgs struct {
	Previous             int
	Current              int
	ItemCount            int
	CallingOnRowsChanged bool
}

type RowsChangedArgs struct {
	Rows                    []int
	ItemCount               int
	CalledOnRowCountChanged bool
}

type RowsOrCountChangedArgs struct {
	RowsDiff         []int
	PreviousRowCount int
	CurrentRowCount  int
	ItemCount        int
	RowCountChanged  bool
	RowsChanged      bool
}

// GroupToggledArgs carries the level and key of the toggled group. A nil
// GroupingKey means every group of Level was toggled.
type GroupToggledArgs struct {
	Level       int
	GroupingKey GroupingKey
}

// batch holds the bookkeeping of a bulk update.
type batch struct {
	deleteIds map[any]struct{}
	// staleIndex is set when positions shifted and idxById must be rebuilt
	staleIndex bool
}

func New(options Options) *DataView {
	return &DataView{
		options:       options,
		idProperty:    DefaultIdProperty,
		items:         []Item{},
		idxById:       map[any]int{},
		rows:          []Row{},
		filteredItems: []Item{},
		filterCache:   roaring.New(),
		sortAsc:       true,

		OnSetItemsCalled:          NewEvent[SetItemsCalledArgs](),
		OnRowCountChanged:         NewEvent[RowCountChangedArgs](),
		OnRowsChanged:             NewEvent[RowsChangedArgs](),
		OnRowsOrCountChanged:      NewEvent[RowsOrCountChangedArgs](),
		OnBeforePagingInfoChanged: NewCancelableEvent[PagingInfo](),
		OnPagingInfoChanged:       NewEvent[PagingInfo](),
		OnGroupExpanded:           NewEvent[GroupToggledArgs](),
		OnGroupCollapsed:          NewEvent[GroupToggledArgs](),
		OnSelectedRowIdsChanged:   NewEvent[SelectedRowIdsChangedArgs](),
	}
}

// BeginUpdate suspends refreshes until EndUpdate. With bulk set, deletions
// are also deferred and applied in a single compaction pass at EndUpdate.
// While a bulk update is open lookups may still return pending-deleted
// items.
func (dv *DataView) BeginUpdate(bulk bool) {
	dv.suspend = true
	if bulk && dv.batch == nil {
		dv.batch = &batch{deleteIds: map[any]struct{}{}}
	}
}

// EndUpdate applies pending deletions, verifies id uniqueness and refreshes
// once. When verification fails nothing is refreshed.
func (dv *DataView) EndUpdate() error {
	b := dv.batch
	dv.batch = nil
	dv.suspend = false

	if b != nil && dv.idxById != nil {
		err := dv.processBulkDelete(b.deleteIds)
		if err != nil {
			return err
		}
	}

	dv.Refresh()
	return nil
}

// Destroy releases every reference held by the view and detaches the grid
// adapters. The view must not be used afterwards.
func (dv *DataView) Destroy() {
	for _, s := range dv.syncSubscriptions {
		s.Unsubscribe()
	}
	dv.syncSubscriptions = nil
	dv.OnRowsOrCountChanged.UnsubscribeAll()

	dv.items = nil
	dv.idxById = nil
	dv.rowsById = nil
	dv.rows = nil
	dv.updated = nil
	dv.batch = nil
	dv.filter = nil
	dv.filterArgs = nil
	dv.filteredItems = nil
	dv.compiledFilter = nil
	dv.compiledFilterWithCaching = nil
	dv.filterCache = nil
	dv.sortComparer = nil
	dv.groups = nil
	dv.groupingInfos = nil
	dv.toggledGroupsByLevel = nil
	dv.selectedRowIds = nil
	dv.selectionGrid = nil
	dv.selectionChange = nil
}

func (dv *DataView) destroyed() bool {
	return dv.idxById == nil
}
