package service

import (
	"github.com/fulldump/dataview/dataview"
)

const (
	RowKindItem   = "item"
	RowKindGroup  = "group"
	RowKindTotals = "totals"
)

type RowView struct {
	Row         int                           `json:"row"`
	Kind        string                        `json:"kind"`
	Item        dataview.Item                 `json:"item,omitempty"`
	Value       any                           `json:"value,omitempty"`
	Title       string                        `json:"title,omitempty"`
	Level       int                           `json:"level,omitempty"`
	Count       int                           `json:"count,omitempty"`
	Collapsed   bool                          `json:"collapsed,omitempty"`
	GroupingKey []any                         `json:"groupingKey,omitempty"`
	Totals      map[string]map[string]any     `json:"totals,omitempty"`
	Selected    bool                          `json:"selected,omitempty"`
	Styles      map[string]dataview.StyleHash `json:"styles,omitempty"`
	Metadata    *dataview.RowMetadata         `json:"metadata,omitempty"`
}

type RowsPage struct {
	From   int                 `json:"from"`
	Rows   []RowView           `json:"rows"`
	Length int                 `json:"length"`
	Paging dataview.PagingInfo `json:"paging"`
}

// Rows renders the visible rows in [from, to). A non positive to means up to
// the last row.
func (v *View) Rows(from, to int) (page RowsPage, err error) {
	err = v.Do(func(dv *dataview.DataView) error {
		length := dv.GetLength()
		if to <= 0 || to > length {
			to = length
		}
		from = max(0, min(from, to))

		page = RowsPage{
			From:   from,
			Rows:   make([]RowView, 0, to-from),
			Length: length,
			Paging: dv.GetPagingInfo(),
		}
		for i := from; i < to; i++ {
			page.Rows = append(page.Rows, v.renderRow(dv, i))
		}
		return nil
	})
	return
}

func (v *View) renderRow(dv *dataview.DataView, i int) RowView {
	r := RowView{
		Row:      i,
		Metadata: dv.GetItemMetadata(i),
	}

	switch row := dv.GetItem(i).(type) {
	case dataview.Item:
		r.Kind = RowKindItem
		r.Item = row
		r.Selected = v.grid.isSelected(i)
		r.Styles = v.grid.stylesOf(i)
	case *dataview.Group:
		r.Kind = RowKindGroup
		r.Value = row.Value
		r.Title = row.Title
		r.Level = row.Level
		r.Count = row.Count
		r.Collapsed = row.Collapsed
		r.GroupingKey = row.GroupingKey
	case *dataview.GroupTotals:
		r.Kind = RowKindTotals
		r.Level = row.Group.Level
		r.GroupingKey = row.Group.GroupingKey
		r.Totals = row.Values()
	}
	return r
}
