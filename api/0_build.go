package api

import (
	"context"
	"net/http"

	"github.com/fulldump/box"
	"github.com/fulldump/box/boxopenapi"

	"github.com/fulldump/dataview/api/apiviewv1"
	"github.com/fulldump/dataview/service"
)

func Build(s service.Servicer, version string) *box.B {

	b := box.NewBox()

	v1 := b.Resource("/v1")
	v1.WithInterceptors(
		box.SetResponseHeader("Content-Type", "application/json"),
	)

	apiviewv1.BuildV1View(v1, s).
		WithInterceptors(
			injectServicer(s),
		)

	b.Resource("/release").
		WithActions(box.Get(func() string {
			return version
		}))

	spec := boxopenapi.Spec(b)
	spec.Info.Title = "DataView"
	spec.Info.Description = "Filter, sort, group, aggregate and page JSON items held in memory."
	b.Resource("/openapi.json").
		WithActions(box.Get(func(r *http.Request) any {
			openapi := spec
			openapi.Servers = []boxopenapi.Server{
				{
					Url: "https://" + r.Host,
				},
				{
					Url: "http://" + r.Host,
				},
			}
			return openapi
		}))

	return b
}

func injectServicer(s service.Servicer) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			next(apiviewv1.SetServicer(ctx, s))
		}
	}
}
