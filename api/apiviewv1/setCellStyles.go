package apiviewv1

import (
	"context"

	"github.com/fulldump/dataview/service"
)

type setCellStylesRequest struct {
	Key    string              `json:"key" validate:"required"`
	Styles []service.CellStyle `json:"styles"`
}

// setCellStyles keeps cell styles attached to item ids. Empty styles
// remove the key.
func setCellStyles(ctx context.Context, input *setCellStylesRequest) (*ViewResponse, error) {

	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	view, err := urlView(ctx)
	if err != nil {
		return nil, err
	}

	err = view.SetCellStyles(input.Key, input.Styles)
	if err != nil {
		return nil, err
	}

	return viewResponse(view)
}
