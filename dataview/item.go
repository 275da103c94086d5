package dataview

import (
	"math"
	"strings"
)

// Item is a data record. Items are kept by reference: the view never copies
// them, so updates must go through UpdateItem to be noticed.
type Item map[string]any

// Row is any entry of the visible row list: an Item, a *Group header or a
// *GroupTotals footer.
type Row interface {
	row()
}

func (Item) row() {}

// Get reads a property. Dotted names walk nested maps ("address.city").
func (i Item) Get(field string) (any, bool) {
	if v, ok := i[field]; ok {
		return v, true
	}
	if !strings.Contains(field, ".") {
		return nil, false
	}

	var current any = map[string]any(i)
	for _, part := range strings.Split(field, ".") {
		m, ok := asMap(current)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Item:
		return m, true
	}
	return nil, false
}

// normalizeId turns an id value into a comparable map key. All numeric kinds
// collapse to float64 so 1, int64(1) and 1.0 address the same item.
func normalizeId(v any) (any, bool) {
	switch id := v.(type) {
	case string:
		return id, true
	case bool:
		return id, true
	case float64:
		if math.IsNaN(id) {
			return nil, false
		}
		return id, true
	case float32:
		if math.IsNaN(float64(id)) {
			return nil, false
		}
		return float64(id), true
	case int:
		return float64(id), true
	case int8:
		return float64(id), true
	case int16:
		return float64(id), true
	case int32:
		return float64(id), true
	case int64:
		return float64(id), true
	case uint:
		return float64(id), true
	case uint8:
		return float64(id), true
	case uint16:
		return float64(id), true
	case uint32:
		return float64(id), true
	case uint64:
		return float64(id), true
	}
	return nil, false
}
