package apiviewv1

import (
	"context"

	"github.com/fulldump/box"

	"github.com/fulldump/dataview/service"
)

const ContextServicerKey = "5c0e7d52-3f0b-4a8e-9a53-0d6f2b7c1e94"

func SetServicer(ctx context.Context, s service.Servicer) context.Context {
	return context.WithValue(ctx, ContextServicerKey, s)
}

func GetServicer(ctx context.Context) service.Servicer {
	return ctx.Value(ContextServicerKey).(service.Servicer)
}

// urlView returns the view named in the url.
func urlView(ctx context.Context) (*service.View, error) {
	return GetServicer(ctx).GetView(box.GetUrlParameter(ctx, "viewName"))
}
