package apiviewv1

import (
	"context"

	"github.com/fulldump/dataview/service"
)

type setGroupingRequest struct {
	Levels []service.GroupingLevel `json:"levels" validate:"dive"`
}

// setGrouping with no levels removes the grouping.
func setGrouping(ctx context.Context, input *setGroupingRequest) (*ViewResponse, error) {

	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	view, err := urlView(ctx)
	if err != nil {
		return nil, err
	}

	err = view.SetGrouping(input.Levels)
	if err != nil {
		return nil, err
	}

	return viewResponse(view)
}
