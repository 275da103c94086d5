package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/tidwall/sjson"

	"github.com/fulldump/dataview/dataview"
	"github.com/fulldump/dataview/filters"
	"github.com/fulldump/dataview/utils"
)

type ViewOptions struct {
	InlineFilters                   bool `json:"inlineFilters"`
	MultiSelect                     bool `json:"multiSelect"`
	PreserveHidden                  bool `json:"preserveHidden"`
	PreserveHiddenOnSelectionChange bool `json:"preserveHiddenOnSelectionChange"`
}

// View is a named DataView shared by HTTP clients. Every operation holds
// the view mutex.
type View struct {
	Name      string
	Options   ViewOptions
	CreatedAt time.Time

	mutex     sync.Mutex
	dv        *dataview.DataView
	grid      *Grid
	styleKeys map[string]bool
	filter    FilterRequest
	sort      SortRequest
}

func newView(name string, options ViewOptions) *View {
	v := &View{
		Name:      name,
		Options:   options,
		CreatedAt: time.Now(),
		dv: dataview.New(dataview.Options{
			InlineFilters: options.InlineFilters,
		}),
		grid:      NewGrid(options.MultiSelect),
		styleKeys: map[string]bool{},
	}
	v.dv.SyncGridSelection(v.grid, options.PreserveHidden, options.PreserveHiddenOnSelectionChange)
	return v
}

// Do runs f with exclusive access to the underlying DataView.
func (v *View) Do(f func(dv *dataview.DataView) error) error {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	if v.dv == nil {
		return ErrorViewNotFound
	}
	return f(v.dv)
}

func (v *View) destroy() {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.dv.Destroy()
	v.dv = nil
}

type ViewInfo struct {
	Name       string              `json:"name"`
	IdProperty string              `json:"idProperty"`
	Items      int                 `json:"items"`
	Filtered   int                 `json:"filtered"`
	Rows       int                 `json:"rows"`
	Paging     dataview.PagingInfo `json:"paging"`
	Groups     int                 `json:"groupingLevels"`
	Selected   int                 `json:"selected"`
}

func (v *View) Info() (info ViewInfo, err error) {
	err = v.Do(func(dv *dataview.DataView) error {
		info = ViewInfo{
			Name:       v.Name,
			IdProperty: dv.GetIdPropertyName(),
			Items:      dv.GetItemCount(),
			Filtered:   dv.GetFilteredItemCount(),
			Rows:       dv.GetLength(),
			Paging:     dv.GetPagingInfo(),
			Groups:     len(dv.GetGrouping()),
			Selected:   len(dv.GetAllSelectedIds()),
		}
		return nil
	})
	return
}

func (v *View) SetItems(items []dataview.Item, idProperty string) error {
	return v.Do(func(dv *dataview.DataView) error {
		if err := dv.SetItems(items, idProperty); err != nil {
			return err
		}
		v.resort(dv)
		return nil
	})
}

// AddItems keeps the current order: with an active sort the items are
// inserted at their sorted position.
func (v *View) AddItems(items []dataview.Item) error {
	return v.Do(func(dv *dataview.DataView) error {
		if v.sort.Field == "" || v.sort.Fast {
			err := dv.AddItems(items)
			if err == nil {
				v.resort(dv)
			}
			return err
		}

		dv.BeginUpdate(false)
		for _, item := range items {
			if err := dv.SortedAddItem(item); err != nil {
				return errors.Join(err, dv.EndUpdate())
			}
		}
		return dv.EndUpdate()
	})
}

func (v *View) InsertItems(before int, items []dataview.Item) error {
	return v.Do(func(dv *dataview.DataView) error {
		return dv.InsertItems(before, items)
	})
}

func (v *View) UpdateItem(id any, item dataview.Item) error {
	return v.Do(func(dv *dataview.DataView) error {
		return v.update(dv, id, item)
	})
}

// update keeps the sort order: the item moves to its new position.
func (v *View) update(dv *dataview.DataView, id any, item dataview.Item) error {
	if v.sort.Field != "" && !v.sort.Fast {
		err := dv.SortedUpdateItem(id, item)
		if !errors.Is(err, dataview.ErrInvalidId) || dv.GetItemById(id) == nil {
			return err
		}
		// the id changed, sorted updates cannot do that
	}

	err := dv.UpdateItem(id, item)
	if err != nil {
		return err
	}
	if v.sort.Fast || v.sort.Field != "" {
		v.resort(dv)
	}
	return nil
}

// PatchItem changes some properties of an item. Paths use sjson syntax
// ("address.city", "tags.-1"); unset paths are removed.
func (v *View) PatchItem(id any, set map[string]any, unset []string) (patched dataview.Item, err error) {
	err = v.Do(func(dv *dataview.DataView) error {
		item := dv.GetItemById(id)
		if item == nil {
			return fmt.Errorf("%w: %v", dataview.ErrInvalidId, id)
		}

		patched, err = patchItem(item, set, unset)
		if err != nil {
			return err
		}

		return v.update(dv, id, patched)
	})
	return
}

func patchItem(item dataview.Item, set map[string]any, unset []string) (dataview.Item, error) {
	raw, err := jsonv2.Marshal(item, jsonv2.Deterministic(true))
	if err != nil {
		return nil, fmt.Errorf("encode item: %w", err)
	}

	for _, path := range utils.GetKeys(set) {
		raw, err = sjson.SetBytes(raw, path, set[path])
		if err != nil {
			return nil, fmt.Errorf("set '%s': %w", path, err)
		}
	}
	for _, path := range unset {
		raw, err = sjson.DeleteBytes(raw, path)
		if err != nil {
			return nil, fmt.Errorf("unset '%s': %w", path, err)
		}
	}

	patched := dataview.Item{}
	err = jsonv2.Unmarshal(raw, &patched)
	if err != nil {
		return nil, fmt.Errorf("decode item: %w", err)
	}
	return patched, nil
}

func (v *View) DeleteItems(ids []any) error {
	return v.Do(func(dv *dataview.DataView) error {
		if len(ids) == 1 {
			return dv.DeleteItem(ids[0])
		}
		dv.BeginUpdate(true)
		if err := dv.DeleteItems(ids); err != nil {
			return errors.Join(err, dv.EndUpdate())
		}
		return dv.EndUpdate()
	})
}

type FilterRequest struct {
	Conditions map[string]any         `json:"conditions"`
	Search     string                 `json:"search"`
	Fields     []string               `json:"fields"`
	Hints      *dataview.RefreshHints `json:"hints"`
}

type filterArgs struct {
	conditions map[string]any
	search     string
}

// SetFilter combines mongo like conditions with a quick search. When only
// the search term changed the refresh is hinted accordingly.
func (v *View) SetFilter(f FilterRequest) error {
	return v.Do(func(dv *dataview.DataView) error {
		previous := v.filter
		v.filter = f

		if len(f.Conditions) == 0 && f.Search == "" {
			dv.SetFilter(nil)
			return nil
		}

		switch {
		case f.Hints != nil:
			dv.SetRefreshHints(*f.Hints)
		case dv.GetFilter() != nil && sameConditions(previous, f):
			dv.SetRefreshHints(filters.SearchHints(previous.Search, f.Search))
		}

		search := filters.Search(f.Fields...)
		dv.SetFilterArgs(filterArgs{conditions: f.Conditions, search: f.Search})
		dv.SetFilter(func(item dataview.Item, args any) bool {
			a := args.(filterArgs)
			return filters.Conditions(item, a.conditions) && search(item, a.search)
		})
		return nil
	})
}

func sameConditions(a, b FilterRequest) bool {
	ra, errA := jsonv2.Marshal(a.Conditions, jsonv2.Deterministic(true))
	rb, errB := jsonv2.Marshal(b.Conditions, jsonv2.Deterministic(true))
	return errA == nil && errB == nil && string(ra) == string(rb) &&
		fmt.Sprint(a.Fields) == fmt.Sprint(b.Fields)
}

type SortRequest struct {
	Field      string `json:"field" validate:"required"`
	Descending bool   `json:"descending"`
	Fast       bool   `json:"fast"`
}

func (v *View) Sort(s SortRequest) error {
	return v.Do(func(dv *dataview.DataView) error {
		v.sort = s
		v.resort(dv)
		return nil
	})
}

func (v *View) resort(dv *dataview.DataView) {
	if v.sort.Field == "" {
		return
	}
	if v.sort.Fast {
		dv.FastSort(v.sort.Field, !v.sort.Descending)
		return
	}
	dv.Sort(dataview.FieldComparer(v.sort.Field), !v.sort.Descending)
}

func (v *View) SetGrouping(levels []GroupingLevel) error {
	infos := make([]dataview.GroupingInfo, len(levels))
	for i, level := range levels {
		info, err := level.GroupingInfo()
		if err != nil {
			return err
		}
		infos[i] = info
	}
	return v.Do(func(dv *dataview.DataView) error {
		return dv.SetGrouping(infos...)
	})
}

type ToggleRequest struct {
	Path  []any `json:"path"`
	Level *int  `json:"level"`
	All   bool  `json:"all"`
}

func (v *View) ToggleGroup(t ToggleRequest, collapse bool) error {
	return v.Do(func(dv *dataview.DataView) error {
		if len(dv.GetGrouping()) == 0 {
			return fmt.Errorf("%w: view is not grouped", dataview.ErrPrecondition)
		}

		switch {
		case t.All && t.Level != nil:
			if collapse {
				dv.CollapseAllGroups(*t.Level)
			} else {
				dv.ExpandAllGroups(*t.Level)
			}
		case t.All:
			if collapse {
				dv.CollapseAllGroups()
			} else {
				dv.ExpandAllGroups()
			}
		case len(t.Path) == 0:
			return fmt.Errorf("%w: group path is empty", dataview.ErrPrecondition)
		case collapse:
			dv.CollapseGroup(t.Path...)
		default:
			dv.ExpandGroup(t.Path...)
		}
		return nil
	})
}

// SetPaging returns the resulting paging and whether the change applied.
func (v *View) SetPaging(options dataview.PagingOptions) (info dataview.PagingInfo, applied bool, err error) {
	err = v.Do(func(dv *dataview.DataView) error {
		applied = dv.SetPagingOptions(options)
		info = dv.GetPagingInfo()
		return nil
	})
	return
}

type SelectRequest struct {
	Ids    []any `json:"ids"`
	Remove bool  `json:"remove"`
	Rows   []int `json:"rows"`
}

type Selection struct {
	Ids         []any `json:"ids"`
	FilteredIds []any `json:"filteredIds"`
	Rows        []int `json:"rows"`
}

// Select changes the selection by ids, or by visible rows as a grid click
// would.
func (v *View) Select(s SelectRequest) (selection Selection, err error) {
	err = v.Do(func(dv *dataview.DataView) error {
		if s.Rows != nil {
			v.grid.SetSelectedRows(s.Rows)
		} else {
			dv.SetSelectedIds(s.Ids, dataview.SetSelectedIdsOptions{Removing: s.Remove})
		}
		selection = Selection{
			Ids:         dv.GetAllSelectedIds(),
			FilteredIds: dv.GetAllSelectedFilteredIds(),
			Rows:        v.grid.GetSelectedRows(),
		}
		return nil
	})
	return
}

type CellStyle struct {
	Id      any                `json:"id"`
	Columns dataview.StyleHash `json:"columns"`
}

// SetCellStyles registers styles by item id under key. The styles follow
// their items across sorting, filtering and paging. No styles removes the
// key.
func (v *View) SetCellStyles(key string, styles []CellStyle) error {
	return v.Do(func(dv *dataview.DataView) error {
		if len(styles) == 0 {
			v.grid.SetCellCssStyles(key, nil)
			delete(v.styleKeys, key)
			return nil
		}

		if !v.styleKeys[key] {
			dv.SyncGridCellCssStyles(v.grid, key)
			v.styleKeys[key] = true
		}

		hash := map[int]dataview.StyleHash{}
		for _, style := range styles {
			if dv.GetItemById(style.Id) == nil {
				return fmt.Errorf("%w: %v", dataview.ErrInvalidId, style.Id)
			}
			if row, visible := dv.GetRowById(style.Id); visible {
				hash[row] = style.Columns
			}
		}
		v.grid.SetCellCssStyles(key, hash)
		return nil
	})
}
