package service

import (
	"github.com/fulldump/dataview/dataview"
)

type AggregatorSpec struct {
	Type  string `json:"type" validate:"required,oneof=sum min max avg count"`
	Field string `json:"field" validate:"required"`
}

// GroupingLevel is the wire form of a dataview.GroupingInfo grouping by a
// property.
type GroupingLevel struct {
	Field                string           `json:"field" validate:"required"`
	Collapsed            bool             `json:"collapsed"`
	PredefinedValues     []any            `json:"predefinedValues"`
	Aggregators          []AggregatorSpec `json:"aggregators" validate:"dive"`
	AggregateEmpty       bool             `json:"aggregateEmpty"`
	AggregateCollapsed   bool             `json:"aggregateCollapsed"`
	AggregateChildGroups bool             `json:"aggregateChildGroups"`
	HideTotalsRow        bool             `json:"hideTotalsRow"`
	LazyTotals           bool             `json:"lazyTotals"`
}

func (l GroupingLevel) GroupingInfo() (dataview.GroupingInfo, error) {
	aggregators := make([]dataview.Aggregator, 0, len(l.Aggregators))
	for _, spec := range l.Aggregators {
		agg, err := dataview.NewAggregator(spec.Type, spec.Field)
		if err != nil {
			return dataview.GroupingInfo{}, err
		}
		aggregators = append(aggregators, agg)
	}

	return dataview.GroupingInfo{
		GetterField:           l.Field,
		Collapsed:             l.Collapsed,
		PredefinedValues:      l.PredefinedValues,
		Aggregators:           aggregators,
		AggregateEmpty:        l.AggregateEmpty,
		AggregateCollapsed:    l.AggregateCollapsed,
		AggregateChildGroups:  l.AggregateChildGroups,
		HideTotalsRow:         l.HideTotalsRow,
		LazyTotalsCalculation: l.LazyTotals,
	}, nil
}
