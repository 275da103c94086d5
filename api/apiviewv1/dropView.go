package apiviewv1

import (
	"context"

	"github.com/fulldump/box"
)

func dropView(ctx context.Context) error {

	s := GetServicer(ctx)

	return s.DeleteView(box.GetUrlParameter(ctx, "viewName"))
}
