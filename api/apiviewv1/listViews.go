package apiviewv1

import (
	"context"
	"errors"

	"github.com/fulldump/dataview/service"
)

func listViews(ctx context.Context) ([]*ViewResponse, error) {

	s := GetServicer(ctx)

	result := []*ViewResponse{}
	for _, view := range s.ListViews() {
		response, err := viewResponse(view)
		if errors.Is(err, service.ErrorViewNotFound) {
			continue // dropped meanwhile
		}
		if err != nil {
			return nil, err
		}
		result = append(result, response)
	}

	return result, nil
}
