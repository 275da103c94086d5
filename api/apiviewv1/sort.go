package apiviewv1

import (
	"context"

	"github.com/fulldump/dataview/service"
)

func sort(ctx context.Context, input *service.SortRequest) (*ViewResponse, error) {

	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	view, err := urlView(ctx)
	if err != nil {
		return nil, err
	}

	err = view.Sort(*input)
	if err != nil {
		return nil, err
	}

	return viewResponse(view)
}
