package apiviewv1

import (
	"context"

	"github.com/fulldump/dataview/service"
)

func collapseGroup(ctx context.Context, input *service.ToggleRequest) (*ViewResponse, error) {
	return toggleGroup(ctx, input, true)
}

func expandGroup(ctx context.Context, input *service.ToggleRequest) (*ViewResponse, error) {
	return toggleGroup(ctx, input, false)
}

func toggleGroup(ctx context.Context, input *service.ToggleRequest, collapse bool) (*ViewResponse, error) {

	view, err := urlView(ctx)
	if err != nil {
		return nil, err
	}

	err = view.ToggleGroup(*input, collapse)
	if err != nil {
		return nil, err
	}

	return viewResponse(view)
}
