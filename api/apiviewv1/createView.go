package apiviewv1

import (
	"context"
	"net/http"

	"github.com/fulldump/dataview/service"
)

type createViewRequest struct {
	Name    string               `json:"name" validate:"omitempty,max=128,excludesall=/:"`
	Options *service.ViewOptions `json:"options"`
}

func createView(ctx context.Context, w http.ResponseWriter, input *createViewRequest) (*ViewResponse, error) {

	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	s := GetServicer(ctx)

	view, err := s.CreateView(input.Name, input.Options)
	if err != nil {
		return nil, err
	}

	response, err := viewResponse(view)
	if err != nil {
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return response, nil
}
