package apiviewv1

import (
	"context"

	"github.com/fulldump/dataview/dataview"
)

type setPagingRequest struct {
	PageSize *int `json:"pageSize" validate:"omitempty,min=0"`
	PageNum  *int `json:"pageNum" validate:"omitempty,min=0"`
}

type setPagingResponse struct {
	Paging  dataview.PagingInfo `json:"paging"`
	Applied bool                `json:"applied"`
}

func setPaging(ctx context.Context, input *setPagingRequest) (*setPagingResponse, error) {

	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	view, err := urlView(ctx)
	if err != nil {
		return nil, err
	}

	info, applied, err := view.SetPaging(dataview.PagingOptions{
		PageSize: input.PageSize,
		PageNum:  input.PageNum,
	})
	if err != nil {
		return nil, err
	}

	return &setPagingResponse{
		Paging:  info,
		Applied: applied,
	}, nil
}
