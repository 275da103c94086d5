package dataview

import (
	"fmt"
	"slices"

	"github.com/go-json-experiment/json"
)

// GroupingInfo describes one grouping level.
type GroupingInfo struct {
	// Getter extracts the group value of an item. When nil, GetterField is
	// read instead.
	Getter      func(item Item) any
	GetterField string

	// Formatter builds the group title, the printed value by default.
	Formatter func(g *Group) string

	// Comparer orders sibling groups, by value by default.
	Comparer func(a, b *Group) int

	// PredefinedValues create groups up front, in this order, even when no
	// item falls into them.
	PredefinedValues []any

	Aggregators          []Aggregator
	AggregateEmpty       bool
	AggregateCollapsed   bool
	AggregateChildGroups bool

	// Collapsed is the default state of the level's groups.
	Collapsed bool

	HideTotalsRow         bool
	LazyTotalsCalculation bool
}

func (gi *GroupingInfo) value(item Item) any {
	if gi.Getter != nil {
		return gi.Getter(item)
	}
	v, _ := item.Get(gi.GetterField)
	return v
}

func (gi *GroupingInfo) title(g *Group) string {
	if gi.Formatter != nil {
		return gi.Formatter(g)
	}
	return fmt.Sprint(g.Value)
}

func defaultGroupComparer(a, b *Group) int {
	return CompareValues(a.Value, b.Value)
}

// GroupingKey is the path of group values from the top level down to a
// group. Being a tuple, values containing any separator cannot collide.
type GroupingKey []any

// String is the canonical JSON encoding of the path.
func (k GroupingKey) String() string {
	b, err := json.Marshal([]any(k), json.Deterministic(true))
	if err != nil {
		return fmt.Sprint([]any(k))
	}
	return string(b)
}

type Group struct {
	Value       any
	Level       int
	GroupingKey GroupingKey
	Title       string
	Count       int
	Collapsed   bool

	// Rows are the items of the group. For nested levels they are all the
	// items of the subtree.
	Rows   []Item
	Groups []*Group
	Totals *GroupTotals

	// combined stands in for Totals when a parent level aggregates child
	// groups whose own level displays no totals.
	combined *GroupTotals
}

func (*Group) row() {}

// Equals reports whether two group rows render the same.
func (g *Group) Equals(other *Group) bool {
	if g == nil || other == nil {
		return g == other
	}
	return valueKey(g.Value) == valueKey(other.Value) &&
		g.Count == other.Count &&
		g.Collapsed == other.Collapsed &&
		g.Title == other.Title
}

// valueKey maps a group value to something usable as a map key.
func valueKey(v any) any {
	if v == nil {
		return nil
	}
	if key, ok := normalizeId(v); ok {
		return key
	}
	return "\x00" + GroupingKey{v}.String()
}

// SetGrouping installs the grouping levels, outermost first. No levels
// removes grouping. Toggled group states are reset.
func (dv *DataView) SetGrouping(levels ...GroupingInfo) error {
	for i, level := range levels {
		if level.Getter == nil && level.GetterField == "" {
			return fmt.Errorf("%w: grouping level %d needs a getter", ErrPrecondition, i)
		}
	}

	if dv.options.GroupItemMetadataProvider == nil {
		dv.options.GroupItemMetadataProvider = NewGroupItemMetadataProvider(GroupItemMetadataOptions{})
	}

	dv.groups = nil
	dv.groupingInfos = make([]*GroupingInfo, len(levels))
	dv.toggledGroupsByLevel = make([]map[string]bool, len(levels))
	for i := range levels {
		gi := levels[i]
		if gi.Comparer == nil {
			gi.Comparer = defaultGroupComparer
		}
		dv.groupingInfos[i] = &gi
		dv.toggledGroupsByLevel[i] = map[string]bool{}
	}

	dv.Refresh()
	return nil
}

// GetGrouping returns a copy of the grouping levels.
func (dv *DataView) GetGrouping() []GroupingInfo {
	levels := make([]GroupingInfo, len(dv.groupingInfos))
	for i, gi := range dv.groupingInfos {
		levels[i] = *gi
	}
	return levels
}

// GetGroups returns the top level groups of the current page.
func (dv *DataView) GetGroups() []*Group {
	return dv.groups
}

// SetAggregators replaces the aggregators of every grouping level.
func (dv *DataView) SetAggregators(aggregators []Aggregator, includeCollapsed bool) error {
	if len(dv.groupingInfos) == 0 {
		return fmt.Errorf("%w: at least one grouping must be specified before calling setAggregators()", ErrPrecondition)
	}
	for _, gi := range dv.groupingInfos {
		gi.Aggregators = aggregators
		gi.AggregateCollapsed = includeCollapsed
	}
	dv.Refresh()
	return nil
}

// CollapseAllGroups collapses every group of the given level, or of all
// levels when none is given.
func (dv *DataView) CollapseAllGroups(level ...int) {
	dv.expandCollapseAllGroups(level, true)
}

func (dv *DataView) ExpandAllGroups(level ...int) {
	dv.expandCollapseAllGroups(level, false)
}

func (dv *DataView) expandCollapseAllGroups(level []int, collapse bool) {
	event := dv.OnGroupExpanded
	if collapse {
		event = dv.OnGroupCollapsed
	}

	levels := level
	if len(levels) == 0 {
		levels = make([]int, len(dv.groupingInfos))
		for i := range levels {
			levels[i] = i
		}
	}

	for _, l := range levels {
		if l < 0 || l >= len(dv.groupingInfos) {
			continue
		}
		dv.groupingInfos[l].Collapsed = collapse
		dv.toggledGroupsByLevel[l] = map[string]bool{}
		event.Notify(GroupToggledArgs{Level: l})
	}
	dv.Refresh()
}

// CollapseGroup collapses the group addressed by its value path, for
// example CollapseGroup("red", 2021).
func (dv *DataView) CollapseGroup(path ...any) {
	dv.expandCollapseGroup(path, true)
}

func (dv *DataView) ExpandGroup(path ...any) {
	dv.expandCollapseGroup(path, false)
}

func (dv *DataView) expandCollapseGroup(path []any, collapse bool) {
	level := len(path) - 1
	if level < 0 || level >= len(dv.groupingInfos) {
		return
	}
	key := GroupingKey(path)
	dv.toggledGroupsByLevel[level][key.String()] = dv.groupingInfos[level].Collapsed != collapse
	dv.Refresh()

	args := GroupToggledArgs{Level: level, GroupingKey: key}
	if collapse {
		dv.OnGroupCollapsed.Notify(args)
	} else {
		dv.OnGroupExpanded.Notify(args)
	}
}

func (dv *DataView) extractGroups(rows []Item, parent *Group) []*Group {
	level := 0
	if parent != nil {
		level = parent.Level + 1
	}
	gi := dv.groupingInfos[level]

	groups := []*Group{}
	groupsByVal := map[any]*Group{}
	newGroup := func(val any) *Group {
		key := GroupingKey{val}
		if parent != nil {
			key = append(slices.Clone(parent.GroupingKey), val)
		}
		g := &Group{
			Value:       val,
			Level:       level,
			GroupingKey: key,
		}
		groups = append(groups, g)
		groupsByVal[valueKey(val)] = g
		return g
	}

	for _, val := range gi.PredefinedValues {
		if groupsByVal[valueKey(val)] == nil {
			newGroup(val)
		}
	}

	for _, r := range rows {
		val := gi.value(r)
		g := groupsByVal[valueKey(val)]
		if g == nil {
			g = newGroup(val)
		}
		g.Rows = append(g.Rows, r)
		g.Count++
	}

	if level < len(dv.groupingInfos)-1 {
		for _, g := range groups {
			g.Groups = dv.extractGroups(g.Rows, g)
		}
	}

	if len(groups) > 0 {
		dv.addTotals(groups, level)
	}

	slices.SortStableFunc(groups, gi.Comparer)
	return groups
}

func (dv *DataView) addTotals(groups []*Group, level int) {
	gi := dv.groupingInfos[level]
	toggled := dv.toggledGroupsByLevel[level]

	for _, g := range groups {
		g.Collapsed = gi.Collapsed != toggled[g.GroupingKey.String()]

		aggregate := len(gi.Aggregators) > 0 &&
			(!g.Collapsed || gi.AggregateCollapsed) &&
			(gi.AggregateEmpty || len(g.Rows) > 0 || len(g.Groups) > 0)
		if aggregate {
			dv.addGroupTotals(g)
		}

		g.Title = gi.title(g)
	}
}

func (dv *DataView) addGroupTotals(g *Group) {
	g.Totals = &GroupTotals{Group: g}
	if !dv.groupingInfos[g.Level].LazyTotalsCalculation {
		dv.calculateTotals(g.Totals)
	}
}

func (dv *DataView) calculateTotals(totals *GroupTotals) {
	g := totals.Group
	gi := dv.groupingInfos[g.Level]
	fromChildren := gi.AggregateChildGroups && g.Level < len(dv.groupingInfos)-1

	if fromChildren {
		for _, child := range g.Groups {
			if child.Totals == nil && child.combined == nil {
				child.combined = &GroupTotals{Group: child}
			}
			if t := child.totalsForCombining(); !t.Initialized {
				dv.calculateTotals(t)
			}
		}
	}

	for _, agg := range gi.Aggregators {
		agg.Init()
		if fromChildren {
			for _, child := range g.Groups {
				agg.AccumulateTotals(child.totalsForCombining())
			}
		} else {
			for _, item := range g.Rows {
				agg.Accumulate(item)
			}
		}
		agg.StoreResult(totals)
	}
	totals.Initialized = true
}

func (g *Group) totalsForCombining() *GroupTotals {
	if g.Totals != nil {
		return g.Totals
	}
	return g.combined
}

func (dv *DataView) flattenGroupedRows(groups []*Group, level int) []Row {
	gi := dv.groupingInfos[level]
	rows := []Row{}
	for _, g := range groups {
		rows = append(rows, g)

		if !g.Collapsed {
			if level < len(dv.groupingInfos)-1 {
				rows = append(rows, dv.flattenGroupedRows(g.Groups, level+1)...)
			} else {
				for _, item := range g.Rows {
					rows = append(rows, item)
				}
			}
		}

		if g.Totals != nil && !gi.HideTotalsRow && (!g.Collapsed || gi.AggregateCollapsed) {
			rows = append(rows, g.Totals)
		}
	}
	return rows
}
