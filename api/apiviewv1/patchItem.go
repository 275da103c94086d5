package apiviewv1

import (
	"context"
	"fmt"
	"net/http"

	jsonv2 "github.com/go-json-experiment/json"

	"github.com/fulldump/dataview/dataview"
)

type patchItemRequest struct {
	Id    any            `json:"id"`
	Set   map[string]any `json:"set"`
	Unset []string       `json:"unset"`
}

// patchItem changes some paths of an item, see service.View.PatchItem.
func patchItem(ctx context.Context, r *http.Request) (dataview.Item, error) {

	input := &patchItemRequest{}
	err := jsonv2.UnmarshalRead(r.Body, input)
	if err != nil {
		return nil, fmt.Errorf("decode patch: %w", err)
	}
	if input.Id == nil {
		return nil, fmt.Errorf("%w: field 'id' is required", dataview.ErrMissingId)
	}

	view, err := urlView(ctx)
	if err != nil {
		return nil, err
	}

	return view.PatchItem(input.Id, input.Set, input.Unset)
}
