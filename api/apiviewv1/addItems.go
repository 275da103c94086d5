package apiviewv1

import (
	"context"

	"github.com/fulldump/dataview/dataview"
)

type addItemsRequest struct {
	Items []dataview.Item `json:"items" validate:"required,min=1"`
}

func addItems(ctx context.Context, input *addItemsRequest) (*ViewResponse, error) {

	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	view, err := urlView(ctx)
	if err != nil {
		return nil, err
	}

	err = view.AddItems(input.Items)
	if err != nil {
		return nil, err
	}

	return viewResponse(view)
}
