package dataview

import (
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

// Filter decides whether an item is visible. args is whatever was given to
// SetFilterArgs.
type Filter func(item Item, args any) bool

// RefreshHints are one-shot optimization flags consumed by the next refresh.
//
// IsFilterNarrowing promises that the new filter only rejects items (it is
// re-applied over the current filtered set). IsFilterExpanding promises that
// it only accepts more (items that passed before are not re-tested). A wrong
// promise produces a wrong row set. IsFilterUnchanged skips filtering.
// IgnoreDiffsBefore and IgnoreDiffsAfter bound the row diff, zero means
// unbounded.
type RefreshHints struct {
	IsFilterNarrowing bool `json:"isFilterNarrowing"`
	IsFilterExpanding bool `json:"isFilterExpanding"`
	IsFilterUnchanged bool `json:"isFilterUnchanged"`
	IgnoreDiffsBefore int  `json:"ignoreDiffsBefore"`
	IgnoreDiffsAfter  int  `json:"ignoreDiffsAfter"`
}

type batchFilter func(items []Item, args any) []Item

type cachingBatchFilter func(items []Item, args any, cache *roaring.Bitmap) []Item

// SetFilter installs the filter and refreshes. A nil filter shows every item.
func (dv *DataView) SetFilter(filter Filter) {
	dv.filter = filter
	dv.compiledFilter = nil
	dv.compiledFilterWithCaching = nil
	if filter != nil && dv.options.InlineFilters {
		dv.compiledFilter = compileFilter(filter)
		dv.compiledFilterWithCaching = compileFilterWithCaching(filter)
	}
	dv.Refresh()
}

func (dv *DataView) GetFilter() Filter {
	return dv.filter
}

// SetFilterArgs stores the filter arguments without refreshing.
func (dv *DataView) SetFilterArgs(args any) {
	dv.filterArgs = args
}

func (dv *DataView) GetFilterArgs() any {
	return dv.filterArgs
}

// SetRefreshHints replaces the hints used by the next refresh.
func (dv *DataView) SetRefreshHints(hints RefreshHints) {
	dv.refreshHints = hints
}

// GetFilteredItems returns the items that passed the filter, before paging.
func (dv *DataView) GetFilteredItems() []Item {
	return dv.filteredItems
}

func (dv *DataView) GetFilteredItemCount() int {
	return len(dv.filteredItems)
}

// compileFilter binds the filter once and returns a tight batch loop over it.
func compileFilter(filter Filter) batchFilter {
	return func(items []Item, args any) []Item {
		retval := make([]Item, 0, len(items))
		for _, item := range items {
			if filter(item, args) {
				retval = append(retval, item)
			}
		}
		return retval
	}
}

func compileFilterWithCaching(filter Filter) cachingBatchFilter {
	return func(items []Item, args any, cache *roaring.Bitmap) []Item {
		retval := make([]Item, 0, len(items))
		for i, item := range items {
			if cache.Contains(uint32(i)) {
				retval = append(retval, item)
			} else if filter(item, args) {
				retval = append(retval, item)
				cache.Add(uint32(i))
			}
		}
		return retval
	}
}

// uncompiledFilter reads the filter from the view on every item, so it
// follows a filter replaced while looping.
func (dv *DataView) uncompiledFilter(items []Item, args any) []Item {
	retval := []Item{}
	for _, item := range items {
		if dv.filter != nil && dv.filter(item, args) {
			retval = append(retval, item)
		}
	}
	return retval
}

func (dv *DataView) uncompiledFilterWithCaching(items []Item, args any, cache *roaring.Bitmap) []Item {
	retval := []Item{}
	for i, item := range items {
		if cache.Contains(uint32(i)) {
			retval = append(retval, item)
		} else if dv.filter != nil && dv.filter(item, args) {
			retval = append(retval, item)
			cache.Add(uint32(i))
		}
	}
	return retval
}

// getFilteredAndPagedItems filters items according to the hints, clamps the
// page number and returns the total filtered count with the current page.
func (dv *DataView) getFilteredAndPagedItems(items []Item) (int, []Item) {
	if dv.filter != nil {
		filter := dv.uncompiledFilter
		filterWithCaching := dv.uncompiledFilterWithCaching
		if dv.options.InlineFilters && dv.compiledFilter != nil {
			filter = dv.compiledFilter
			filterWithCaching = dv.compiledFilterWithCaching
		}

		switch {
		case dv.refreshHints.IsFilterNarrowing:
			dv.filteredItems = filter(dv.filteredItems, dv.filterArgs)
		case dv.refreshHints.IsFilterExpanding:
			dv.filteredItems = filterWithCaching(items, dv.filterArgs, dv.filterCache)
		case !dv.refreshHints.IsFilterUnchanged:
			dv.filteredItems = filter(items, dv.filterArgs)
		}
	} else {
		dv.filteredItems = slices.Clone(items)
	}

	total := len(dv.filteredItems)
	if dv.pageSize <= 0 {
		return total, dv.filteredItems
	}

	if total <= dv.pageNum*dv.pageSize {
		if total == 0 {
			dv.pageNum = 0
		} else {
			dv.pageNum = (total - 1) / dv.pageSize
		}
	}
	from := dv.pageSize * dv.pageNum
	to := min(from+dv.pageSize, total)
	return total, dv.filteredItems[from:to]
}
