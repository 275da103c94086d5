package apiviewv1

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/fulldump/dataview/service"
)

var validate = validator.New()

type ViewResponse struct {
	service.ViewInfo
	Options   service.ViewOptions `json:"options"`
	CreatedAt time.Time           `json:"createdAt"`
}

func viewResponse(view *service.View) (*ViewResponse, error) {
	info, err := view.Info()
	if err != nil {
		return nil, err
	}
	return &ViewResponse{
		ViewInfo:  info,
		Options:   view.Options,
		CreatedAt: view.CreatedAt,
	}, nil
}
