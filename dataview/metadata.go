package dataview

import (
	"fmt"
)

// RowMetadata tells the grid how to present a row.
type RowMetadata struct {
	Selectable bool   `json:"selectable"`
	Focusable  bool   `json:"focusable"`
	CssClasses string `json:"cssClasses,omitempty"`
	// ColSpan makes the first cell span the given number of columns, -1
	// meaning the whole row.
	ColSpan int `json:"colspan,omitempty"`
}

type ItemMetadataProvider interface {
	GetRowMetadata(item Item, row int) *RowMetadata
}

type GroupItemMetadataProvider interface {
	GetGroupRowMetadata(g *Group, row int) *RowMetadata
	GetTotalsRowMetadata(t *GroupTotals, row int) *RowMetadata
}

type GroupItemMetadataOptions struct {
	GroupCssClass   string
	TotalsCssClass  string
	GroupFocusable  bool
	TotalsFocusable bool
}

type defaultGroupItemMetadataProvider struct {
	options GroupItemMetadataOptions
}

// NewGroupItemMetadataProvider returns the provider SetGrouping installs by
// default: focusable full width group headers and inert totals rows.
func NewGroupItemMetadataProvider(options GroupItemMetadataOptions) GroupItemMetadataProvider {
	if options.GroupCssClass == "" {
		options.GroupCssClass = "slick-group"
	}
	if options.TotalsCssClass == "" {
		options.TotalsCssClass = "slick-group-totals"
	}
	return &defaultGroupItemMetadataProvider{options: options}
}

func (p *defaultGroupItemMetadataProvider) GetGroupRowMetadata(g *Group, row int) *RowMetadata {
	state := "expanded"
	if g.Collapsed {
		state = "collapsed"
	}
	return &RowMetadata{
		Selectable: false,
		Focusable:  p.options.GroupFocusable,
		CssClasses: fmt.Sprintf("%s %s-level-%d %s", p.options.GroupCssClass, p.options.GroupCssClass, g.Level, state),
		ColSpan:    -1,
	}
}

func (p *defaultGroupItemMetadataProvider) GetTotalsRowMetadata(t *GroupTotals, row int) *RowMetadata {
	return &RowMetadata{
		Selectable: false,
		Focusable:  p.options.TotalsFocusable,
		CssClasses: fmt.Sprintf("%s %s-level-%d", p.options.TotalsCssClass, p.options.TotalsCssClass, t.Group.Level),
	}
}

// GetItemMetadata returns the metadata of the row at position i, or nil
// when nobody provides one.
func (dv *DataView) GetItemMetadata(i int) *RowMetadata {
	row := dv.GetItem(i)
	if row == nil {
		return nil
	}

	switch r := row.(type) {
	case *Group:
		if dv.options.GroupItemMetadataProvider != nil {
			return dv.options.GroupItemMetadataProvider.GetGroupRowMetadata(r, i)
		}
	case *GroupTotals:
		if dv.options.GroupItemMetadataProvider != nil {
			return dv.options.GroupItemMetadataProvider.GetTotalsRowMetadata(r, i)
		}
	case Item:
		if dv.options.GlobalItemMetadataProvider != nil {
			return dv.options.GlobalItemMetadataProvider.GetRowMetadata(r, i)
		}
	}
	return nil
}
