package apiviewv1

import (
	"context"

	"github.com/fulldump/dataview/service"
)

// setFilter accepts connor conditions plus a quick search term. An empty
// request removes the filter.
func setFilter(ctx context.Context, input *service.FilterRequest) (*ViewResponse, error) {

	view, err := urlView(ctx)
	if err != nil {
		return nil, err
	}

	err = view.SetFilter(*input)
	if err != nil {
		return nil, err
	}

	return viewResponse(view)
}
