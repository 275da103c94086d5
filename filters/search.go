package filters

import (
	"fmt"
	"strings"

	"github.com/fulldump/dataview/dataview"
)

// Search returns a filter accepting items where any of the fields contains
// the filter args (a string), case insensitive. With no fields every
// property is searched.
func Search(fields ...string) dataview.Filter {
	return func(item dataview.Item, args any) bool {
		term, _ := args.(string)
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			return true
		}

		if len(fields) == 0 {
			for _, v := range item {
				if containsFold(v, term) {
					return true
				}
			}
			return false
		}

		for _, field := range fields {
			v, ok := item.Get(field)
			if ok && containsFold(v, term) {
				return true
			}
		}
		return false
	}
}

func containsFold(v any, term string) bool {
	if v == nil {
		return false
	}
	return strings.Contains(strings.ToLower(fmt.Sprint(v)), term)
}

// SearchHints tells the view how a search term changed: typing more
// characters can only narrow the result, deleting can only expand it.
func SearchHints(previous, current string) dataview.RefreshHints {
	previous = strings.ToLower(strings.TrimSpace(previous))
	current = strings.ToLower(strings.TrimSpace(current))

	switch {
	case previous == current:
		return dataview.RefreshHints{IsFilterUnchanged: true}
	case strings.Contains(current, previous):
		return dataview.RefreshHints{IsFilterNarrowing: true}
	case strings.Contains(previous, current):
		return dataview.RefreshHints{IsFilterExpanding: true}
	}
	return dataview.RefreshHints{}
}
