package main

import (
	"fmt"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/spf13/cobra"

	"github.com/fulldump/dataview/dataview"
	"github.com/fulldump/dataview/service"
)

type options struct {
	idProperty string
	path       string
	filter     string
	search     string
	sortField  string
	descending bool
	fast       bool
	groups     []string
	collapsed  bool
	sum        []string
	avg        []string
	min        []string
	max        []string
	count      []string
	pageSize   int
	page       int
}

func newRootCmd() *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:   "dvcat FILE",
		Short: "Filter, sort, group and page a JSON or YAML dataset",
		Long: `dvcat loads a list of items from a JSON or YAML file and prints the
rows a data view would show: group headers, items and totals.

Examples:
  # Players with more than 5 points, best first
  dvcat players.yaml --filter '{"score":{"$gt":5}}' --sort score --desc

  # Points per team
  dvcat players.json --path data.players --group team --sum score --avg score`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, o, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&o.idProperty, "id", dataview.DefaultIdProperty, "Property holding the item id")
	flags.StringVar(&o.path, "path", "", "gjson path to the list of items inside the file")
	flags.StringVar(&o.filter, "filter", "", "Conditions in mongo query syntax, as JSON")
	flags.StringVar(&o.search, "search", "", "Keep items containing this text in any property")
	flags.StringVar(&o.sortField, "sort", "", "Sort by this property")
	flags.BoolVar(&o.descending, "desc", false, "Sort descending")
	flags.BoolVar(&o.fast, "fast", false, "Sort with the key tree instead of the comparer")
	flags.StringSliceVar(&o.groups, "group", nil, "Group by this property, repeat for nested groups")
	flags.BoolVar(&o.collapsed, "collapsed", false, "Collapse every group")
	flags.StringSliceVar(&o.sum, "sum", nil, "Sum this property in every group")
	flags.StringSliceVar(&o.avg, "avg", nil, "Average this property in every group")
	flags.StringSliceVar(&o.min, "min", nil, "Minimum of this property in every group")
	flags.StringSliceVar(&o.max, "max", nil, "Maximum of this property in every group")
	flags.StringSliceVar(&o.count, "count", nil, "Count numeric values of this property in every group")
	flags.IntVar(&o.pageSize, "page-size", 0, "Rows per page, 0 disables paging")
	flags.IntVar(&o.page, "page", 0, "Page to print, starting at 0")

	return cmd
}

func (o *options) aggregators() []service.AggregatorSpec {
	specs := []service.AggregatorSpec{}
	add := func(kind string, fields []string) {
		for _, field := range fields {
			specs = append(specs, service.AggregatorSpec{Type: kind, Field: field})
		}
	}
	add(dataview.AggregatorSum, o.sum)
	add(dataview.AggregatorAvg, o.avg)
	add(dataview.AggregatorMin, o.min)
	add(dataview.AggregatorMax, o.max)
	add(dataview.AggregatorCount, o.count)
	return specs
}

func run(cmd *cobra.Command, o *options, filename string) error {

	items, err := loadItems(filename, o.path)
	if err != nil {
		return err
	}

	view, err := service.NewService(service.ViewOptions{}).CreateView(filename, nil)
	if err != nil {
		return err
	}

	err = view.SetItems(items, o.idProperty)
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}

	if o.filter != "" || o.search != "" {
		conditions := map[string]any{}
		if o.filter != "" {
			err := jsonv2.Unmarshal([]byte(o.filter), &conditions)
			if err != nil {
				return fmt.Errorf("bad --filter: %w", err)
			}
		}
		err = view.SetFilter(service.FilterRequest{
			Conditions: conditions,
			Search:     o.search,
		})
		if err != nil {
			return err
		}
	}

	if o.sortField != "" {
		err = view.Sort(service.SortRequest{
			Field:      o.sortField,
			Descending: o.descending,
			Fast:       o.fast,
		})
		if err != nil {
			return err
		}
	}

	aggregators := o.aggregators()
	if len(aggregators) > 0 && len(o.groups) == 0 {
		return fmt.Errorf("aggregators need at least one --group")
	}
	if len(o.groups) > 0 {
		levels := make([]service.GroupingLevel, len(o.groups))
		for i, field := range o.groups {
			levels[i] = service.GroupingLevel{
				Field:       field,
				Collapsed:   o.collapsed,
				Aggregators: aggregators,
			}
		}
		err = view.SetGrouping(levels)
		if err != nil {
			return err
		}
	}

	if o.pageSize > 0 {
		_, _, err = view.SetPaging(dataview.PagingOptions{
			PageSize: &o.pageSize,
			PageNum:  &o.page,
		})
		if err != nil {
			return err
		}
	}

	page, err := view.Rows(0, 0)
	if err != nil {
		return err
	}

	return printRows(cmd.OutOrStdout(), page, len(o.groups))
}
