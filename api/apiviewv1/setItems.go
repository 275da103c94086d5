package apiviewv1

import (
	"context"

	"github.com/fulldump/dataview/dataview"
)

type setItemsRequest struct {
	Items      []dataview.Item `json:"items"`
	IdProperty string          `json:"idProperty"`
}

// setItems replaces the whole content of the view.
func setItems(ctx context.Context, input *setItemsRequest) (*ViewResponse, error) {

	view, err := urlView(ctx)
	if err != nil {
		return nil, err
	}

	if input.Items == nil {
		input.Items = []dataview.Item{}
	}

	err = view.SetItems(input.Items, input.IdProperty)
	if err != nil {
		return nil, err
	}

	return viewResponse(view)
}
