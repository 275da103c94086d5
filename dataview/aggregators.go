package dataview

import (
	"fmt"
)

// Aggregator computes one total of one field over a group.
//
// Init resets the running state, Accumulate feeds a leaf item,
// AccumulateTotals feeds the already computed totals of a child group and
// StoreResult writes the result into totals.
type Aggregator interface {
	Type() string
	Field() string
	Init()
	Accumulate(item Item)
	AccumulateTotals(totals *GroupTotals)
	StoreResult(totals *GroupTotals)
}

const (
	AggregatorSum   = "sum"
	AggregatorMin   = "min"
	AggregatorMax   = "max"
	AggregatorAvg   = "avg"
	AggregatorCount = "count"
)

// NewAggregator builds one of the numeric aggregators by name.
func NewAggregator(kind, field string) (Aggregator, error) {
	switch kind {
	case AggregatorSum:
		return NewSumAggregator(field), nil
	case AggregatorMin:
		return NewMinAggregator(field), nil
	case AggregatorMax:
		return NewMaxAggregator(field), nil
	case AggregatorAvg:
		return NewAvgAggregator(field), nil
	case AggregatorCount:
		return NewCountAggregator(field), nil
	}
	return nil, fmt.Errorf("%w: unknown aggregator '%s'", ErrPrecondition, kind)
}

// Stats is the mergeable state shared by the numeric aggregators.
type Stats struct {
	Count int
	Sum   float64
	Min   float64
	Max   float64
}

func (s *Stats) Add(v float64) {
	if s.Count == 0 {
		s.Min = v
		s.Max = v
	} else {
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
	}
	s.Count++
	s.Sum += v
}

func (s *Stats) Combine(other Stats) {
	if other.Count == 0 {
		return
	}
	if s.Count == 0 {
		*s = other
		return
	}
	s.Count += other.Count
	s.Sum += other.Sum
	s.Min = min(s.Min, other.Min)
	s.Max = max(s.Max, other.Max)
}

// Avg returns 0 for empty stats.
func (s Stats) Avg() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

// GroupTotals is the totals row of a group. Results are addressed by
// aggregator type and field: Get("sum", "price").
type GroupTotals struct {
	Group       *Group
	Initialized bool

	values map[string]map[string]any
	stats  map[string]Stats
}

func (*GroupTotals) row() {}

func (t *GroupTotals) Get(kind, field string) (any, bool) {
	v, ok := t.values[kind][field]
	return v, ok
}

func (t *GroupTotals) Set(kind, field string, value any) {
	if t.values == nil {
		t.values = map[string]map[string]any{}
	}
	if t.values[kind] == nil {
		t.values[kind] = map[string]any{}
	}
	t.values[kind][field] = value
}

// Values exposes every stored result, type first then field.
func (t *GroupTotals) Values() map[string]map[string]any {
	return t.values
}

// Stats returns the numeric state of a field once any numeric aggregator
// ran over it.
func (t *GroupTotals) Stats(field string) (Stats, bool) {
	s, ok := t.stats[field]
	return s, ok
}

func (t *GroupTotals) setStats(field string, s Stats) {
	if t.stats == nil {
		t.stats = map[string]Stats{}
	}
	t.stats[field] = s
}

type numericAggregator struct {
	kind  string
	field string
	stats Stats
}

func (a *numericAggregator) Type() string {
	return a.kind
}

func (a *numericAggregator) Field() string {
	return a.field
}

func (a *numericAggregator) Init() {
	a.stats = Stats{}
}

func (a *numericAggregator) Accumulate(item Item) {
	v, _ := item.Get(a.field)
	if f, ok := numeric(v); ok {
		a.stats.Add(f)
	}
}

// AccumulateTotals merges child stats. Children whose level did not
// aggregate this field are read item by item.
func (a *numericAggregator) AccumulateTotals(totals *GroupTotals) {
	if totals == nil {
		return
	}
	if s, ok := totals.Stats(a.field); ok {
		a.stats.Combine(s)
		return
	}
	if totals.Group != nil {
		for _, item := range totals.Group.Rows {
			a.Accumulate(item)
		}
	}
}

type SumAggregator struct {
	numericAggregator
}

func NewSumAggregator(field string) *SumAggregator {
	return &SumAggregator{numericAggregator{kind: AggregatorSum, field: field}}
}

func (a *SumAggregator) StoreResult(totals *GroupTotals) {
	totals.setStats(a.field, a.stats)
	totals.Set(a.kind, a.field, a.stats.Sum)
}

// MinAggregator stores nil when no numeric value was seen.
type MinAggregator struct {
	numericAggregator
}

func NewMinAggregator(field string) *MinAggregator {
	return &MinAggregator{numericAggregator{kind: AggregatorMin, field: field}}
}

func (a *MinAggregator) StoreResult(totals *GroupTotals) {
	totals.setStats(a.field, a.stats)
	if a.stats.Count == 0 {
		totals.Set(a.kind, a.field, nil)
		return
	}
	totals.Set(a.kind, a.field, a.stats.Min)
}

// MaxAggregator stores nil when no numeric value was seen.
type MaxAggregator struct {
	numericAggregator
}

func NewMaxAggregator(field string) *MaxAggregator {
	return &MaxAggregator{numericAggregator{kind: AggregatorMax, field: field}}
}

func (a *MaxAggregator) StoreResult(totals *GroupTotals) {
	totals.setStats(a.field, a.stats)
	if a.stats.Count == 0 {
		totals.Set(a.kind, a.field, nil)
		return
	}
	totals.Set(a.kind, a.field, a.stats.Max)
}

// AvgAggregator divides by the number of numeric values, not by the number
// of items. Nothing is stored for a group without numeric values.
type AvgAggregator struct {
	numericAggregator
}

func NewAvgAggregator(field string) *AvgAggregator {
	return &AvgAggregator{numericAggregator{kind: AggregatorAvg, field: field}}
}

func (a *AvgAggregator) StoreResult(totals *GroupTotals) {
	totals.setStats(a.field, a.stats)
	if a.stats.Count == 0 {
		return
	}
	totals.Set(a.kind, a.field, a.stats.Avg())
}

// CountAggregator counts the items with a numeric value in the field.
type CountAggregator struct {
	numericAggregator
}

func NewCountAggregator(field string) *CountAggregator {
	return &CountAggregator{numericAggregator{kind: AggregatorCount, field: field}}
}

func (a *CountAggregator) StoreResult(totals *GroupTotals) {
	totals.setStats(a.field, a.stats)
	totals.Set(a.kind, a.field, a.stats.Count)
}
