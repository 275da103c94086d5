package apiviewv1

import (
	"context"

	"github.com/fulldump/dataview/service"
)

func select_(ctx context.Context, input *service.SelectRequest) (*service.Selection, error) {

	view, err := urlView(ctx)
	if err != nil {
		return nil, err
	}

	selection, err := view.Select(*input)
	if err != nil {
		return nil, err
	}

	return &selection, nil
}
