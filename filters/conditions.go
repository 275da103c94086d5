package filters

import (
	"fmt"

	"github.com/SierraSoftworks/connor"

	"github.com/fulldump/dataview/dataview"
)

// Conditions is a dataview.Filter that reads mongo like conditions from the
// filter args, for example {"price": {"$gt": 10}}. Empty or missing
// conditions accept every item. Items the conditions cannot be evaluated
// against are rejected.
func Conditions(item dataview.Item, args any) bool {
	conditions, _ := args.(map[string]any)
	match, err := Check(conditions, item)
	return err == nil && match
}

// Match returns a filter bound to fixed conditions, ignoring filter args.
func Match(conditions map[string]any) dataview.Filter {
	return func(item dataview.Item, _ any) bool {
		return Conditions(item, conditions)
	}
}

// Check evaluates conditions against one item.
func Check(conditions map[string]any, item dataview.Item) (bool, error) {
	if len(conditions) == 0 {
		return true, nil
	}
	match, err := connor.Match(conditions, map[string]any(item))
	if err != nil {
		return false, fmt.Errorf("match: %w", err)
	}
	return match, nil
}
