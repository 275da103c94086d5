package apiviewv1

import (
	"context"

	"github.com/fulldump/dataview/service"
)

type rowsRequest struct {
	From int `json:"from" validate:"min=0"`
	To   int `json:"to" validate:"min=0"`
}

// rows returns the visible rows in [from, to). to=0 means until the end.
func rows(ctx context.Context, input *rowsRequest) (*service.RowsPage, error) {

	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	view, err := urlView(ctx)
	if err != nil {
		return nil, err
	}

	page, err := view.Rows(input.From, input.To)
	if err != nil {
		return nil, err
	}

	return &page, nil
}
