package apiviewv1

import (
	"context"
	"fmt"

	"github.com/fulldump/dataview/dataview"
)

type updateItemRequest struct {
	Id   any           `json:"id"`
	Item dataview.Item `json:"item" validate:"required"`
}

func updateItem(ctx context.Context, input *updateItemRequest) (dataview.Item, error) {

	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	if input.Id == nil {
		return nil, fmt.Errorf("%w: field 'id' is required", dataview.ErrMissingId)
	}

	view, err := urlView(ctx)
	if err != nil {
		return nil, err
	}

	err = view.UpdateItem(input.Id, input.Item)
	if err != nil {
		return nil, err
	}

	return input.Item, nil
}
