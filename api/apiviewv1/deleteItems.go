package apiviewv1

import (
	"context"
)

type deleteItemsRequest struct {
	Ids []any `json:"ids" validate:"required,min=1"`
}

func deleteItems(ctx context.Context, input *deleteItemsRequest) (*ViewResponse, error) {

	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	view, err := urlView(ctx)
	if err != nil {
		return nil, err
	}

	err = view.DeleteItems(input.Ids)
	if err != nil {
		return nil, err
	}

	return viewResponse(view)
}
