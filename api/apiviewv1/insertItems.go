package apiviewv1

import (
	"context"

	"github.com/fulldump/dataview/dataview"
)

type insertItemsRequest struct {
	Before int             `json:"before" validate:"min=0"`
	Items  []dataview.Item `json:"items" validate:"required,min=1"`
}

// insertItems puts items before the given position of the item store.
func insertItems(ctx context.Context, input *insertItemsRequest) (*ViewResponse, error) {

	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	view, err := urlView(ctx)
	if err != nil {
		return nil, err
	}

	err = view.InsertItems(input.Before, input.Items)
	if err != nil {
		return nil, err
	}

	return viewResponse(view)
}
