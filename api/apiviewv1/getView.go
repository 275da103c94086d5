package apiviewv1

import (
	"context"
)

func getView(ctx context.Context) (*ViewResponse, error) {

	view, err := urlView(ctx)
	if err != nil {
		return nil, err
	}

	return viewResponse(view)
}
