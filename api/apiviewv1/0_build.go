package apiviewv1

import (
	"github.com/fulldump/box"

	"github.com/fulldump/dataview/service"
)

func BuildV1View(v1 *box.R, s service.Servicer) *box.R {

	views := v1.Resource("/views").
		WithActions(
			box.Get(listViews),
			box.Post(createView),
		)

	v1.Resource("/views/{viewName}").
		WithActions(
			box.Get(getView),
			box.ActionPost(setItems),
			box.ActionPost(addItems),
			box.ActionPost(insertItems),
			box.ActionPost(updateItem),
			box.ActionPost(patchItem),
			box.ActionPost(deleteItems),
			box.ActionPost(setFilter),
			box.ActionPost(sort),
			box.ActionPost(setGrouping),
			box.ActionPost(collapseGroup),
			box.ActionPost(expandGroup),
			box.ActionPost(setPaging),
			box.ActionPost(rows),
			box.ActionPost(select_).WithName("select"),
			box.ActionPost(setCellStyles),
			box.ActionPost(dropView),
		)

	return views
}
