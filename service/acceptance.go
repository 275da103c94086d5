package service

import (
	"net/http"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"
)

type JSON = map[string]interface{}

var players = []JSON{
	{"id": 1, "name": "Ada", "team": "red", "score": 10},
	{"id": 2, "name": "Bob", "team": "blue", "score": 7},
	{"id": 3, "name": "Cid", "team": "red", "score": 3},
	{"id": 4, "name": "Dan", "team": "blue", "score": 12},
}

func infoBody(resp *apitest.Response) JSON {
	body := resp.BodyJsonMap()
	delete(body, "createdAt")
	return body
}

func viewInfo(items, filtered, rows int, paging JSON, groupingLevels, selected int) JSON {
	return JSON{
		"name":           "players",
		"idProperty":     "id",
		"items":          items,
		"filtered":       filtered,
		"rows":           rows,
		"paging":         paging,
		"groupingLevels": groupingLevels,
		"selected":       selected,
		"options": JSON{
			"inlineFilters":                   false,
			"multiSelect":                     true,
			"preserveHidden":                  false,
			"preserveHiddenOnSelectionChange": false,
		},
	}
}

func noPaging(totalRows int) JSON {
	return JSON{"pageSize": 0, "pageNum": 0, "totalRows": totalRows, "totalPages": 1}
}

func itemRow(row int, item JSON) JSON {
	return JSON{"row": row, "kind": "item", "item": item}
}

func rowIds(resp *apitest.Response) []interface{} {
	ids := []interface{}{}
	rows, _ := resp.BodyJsonMap()["rows"].([]interface{})
	for _, r := range rows {
		row := r.(map[string]interface{})
		if item, ok := row["item"].(map[string]interface{}); ok {
			ids = append(ids, item["id"])
		}
	}
	return ids
}

func Acceptance(a *biff.A, apiRequest func(method, path string) *apitest.Request) {

	a.Alternative("Create view", func(a *biff.A) {
		resp := apiRequest("POST", "/views").
			WithBodyJson(JSON{
				"name": "players",
				"options": JSON{
					"multiSelect": true,
				},
			}).Do()
		Save(resp, "Create view", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		biff.AssertEqualJson(infoBody(resp), viewInfo(0, 0, 0, noPaging(0), 0, 0))

		a.Alternative("Create view twice", func(a *biff.A) {
			resp := apiRequest("POST", "/views").
				WithBodyJson(JSON{"name": "players"}).Do()
			Save(resp, "Create view - already exists", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusConflict)
			biff.AssertEqualJson(resp.BodyJson(), JSON{
				"error": JSON{
					"message":     "view already exists",
					"description": "choose another name or drop the view first",
				},
			})
		})

		a.Alternative("Retrieve view", func(a *biff.A) {
			resp := apiRequest("GET", "/views/players").Do()
			Save(resp, "Retrieve view", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(infoBody(resp), viewInfo(0, 0, 0, noPaging(0), 0, 0))
		})

		a.Alternative("List views", func(a *biff.A) {
			resp := apiRequest("GET", "/views").Do()
			Save(resp, "List views", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			list := resp.BodyJson().([]interface{})
			biff.AssertEqual(len(list), 1)
			view := list[0].(map[string]interface{})
			delete(view, "createdAt")
			biff.AssertEqualJson(view, viewInfo(0, 0, 0, noPaging(0), 0, 0))
		})

		a.Alternative("Drop view", func(a *biff.A) {
			resp := apiRequest("POST", "/views/players:dropView").Do()
			Save(resp, "Drop view", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)

			a.Alternative("Get dropped view", func(a *biff.A) {
				resp := apiRequest("GET", "/views/players").Do()
				Save(resp, "Retrieve view - not found", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			})
		})

		a.Alternative("Set items with duplicated ids", func(a *biff.A) {
			resp := apiRequest("POST", "/views/players:setItems").
				WithBodyJson(JSON{
					"items": []JSON{{"id": 1}, {"id": 1}},
				}).Do()
			Save(resp, "Set items - duplicated id", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusConflict)
		})

		a.Alternative("Set items without id", func(a *biff.A) {
			resp := apiRequest("POST", "/views/players:setItems").
				WithBodyJson(JSON{
					"items": []JSON{{"name": "nobody"}},
				}).Do()
			Save(resp, "Set items - missing id", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		})

		a.Alternative("Set items", func(a *biff.A) {
			resp := apiRequest("POST", "/views/players:setItems").
				WithBodyJson(JSON{
					"items": players,
				}).Do()
			Save(resp, "Set items", `
				Replaces the whole content of the view. Every item must have
				a unique 'id' property, or the property given in 'idProperty'.
			`)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(infoBody(resp), viewInfo(4, 4, 4, noPaging(4), 0, 0))

			a.Alternative("Rows", func(a *biff.A) {
				resp := apiRequest("POST", "/views/players:rows").
					WithBodyJson(JSON{"from": 1, "to": 3}).Do()
				Save(resp, "Rows", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"from": 1,
					"rows": []JSON{
						itemRow(1, players[1]),
						itemRow(2, players[2]),
					},
					"length": 4,
					"paging": noPaging(4),
				})
			})

			a.Alternative("Rows without body", func(a *biff.A) {
				resp := apiRequest("POST", "/views/players:rows").Do()

				biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
			})

			a.Alternative("Sort descending", func(a *biff.A) {
				resp := apiRequest("POST", "/views/players:sort").
					WithBodyJson(JSON{"field": "score", "descending": true}).Do()
				Save(resp, "Sort", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)

				resp = apiRequest("POST", "/views/players:rows").
					WithBodyJson(JSON{}).Do()
				biff.AssertEqualJson(rowIds(resp), []interface{}{4, 1, 2, 3})

				a.Alternative("Add item keeps the order", func(a *biff.A) {
					resp := apiRequest("POST", "/views/players:addItems").
						WithBodyJson(JSON{
							"items": []JSON{{"id": 5, "name": "Eve", "team": "red", "score": 8}},
						}).Do()
					Save(resp, "Add items", ``)

					biff.AssertEqual(resp.StatusCode, http.StatusOK)

					resp = apiRequest("POST", "/views/players:rows").
						WithBodyJson(JSON{}).Do()
					biff.AssertEqualJson(rowIds(resp), []interface{}{4, 1, 5, 2, 3})
				})

				a.Alternative("Update item moves it", func(a *biff.A) {
					resp := apiRequest("POST", "/views/players:updateItem").
						WithBodyJson(JSON{
							"id":   3,
							"item": JSON{"id": 3, "name": "Cid", "team": "red", "score": 20},
						}).Do()
					Save(resp, "Update item", ``)

					biff.AssertEqual(resp.StatusCode, http.StatusOK)

					resp = apiRequest("POST", "/views/players:rows").
						WithBodyJson(JSON{}).Do()
					biff.AssertEqualJson(rowIds(resp), []interface{}{3, 4, 1, 2})
				})
			})

			a.Alternative("Sort without field", func(a *biff.A) {
				resp := apiRequest("POST", "/views/players:sort").
					WithBodyJson(JSON{"descending": true}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
			})

			a.Alternative("Filter", func(a *biff.A) {
				resp := apiRequest("POST", "/views/players:setFilter").
					WithBodyJson(JSON{
						"conditions": JSON{"score": JSON{"$gt": 5}},
					}).Do()
				Save(resp, "Set filter", `
					Conditions follow the mongo query syntax. A quick search term
					can be combined with them.
				`)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(infoBody(resp), viewInfo(4, 3, 3, noPaging(3), 0, 0))

				a.Alternative("Search narrows", func(a *biff.A) {
					resp := apiRequest("POST", "/views/players:setFilter").
						WithBodyJson(JSON{
							"conditions": JSON{"score": JSON{"$gt": 5}},
							"search":     "a",
							"fields":     []string{"name"},
						}).Do()
					Save(resp, "Set filter - search", ``)

					biff.AssertEqual(resp.StatusCode, http.StatusOK)

					resp = apiRequest("POST", "/views/players:rows").
						WithBodyJson(JSON{}).Do()
					biff.AssertEqualJson(rowIds(resp), []interface{}{1, 4})
				})

				a.Alternative("Remove filter", func(a *biff.A) {
					resp := apiRequest("POST", "/views/players:setFilter").
						WithBodyJson(JSON{}).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqualJson(infoBody(resp), viewInfo(4, 4, 4, noPaging(4), 0, 0))
				})
			})

			a.Alternative("Group by team", func(a *biff.A) {
				resp := apiRequest("POST", "/views/players:setGrouping").
					WithBodyJson(JSON{
						"levels": []JSON{
							{
								"field": "team",
								"aggregators": []JSON{
									{"type": "sum", "field": "score"},
								},
							},
						},
					}).Do()
				Save(resp, "Set grouping", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(infoBody(resp), viewInfo(4, 4, 8, noPaging(4), 1, 0))

				resp = apiRequest("POST", "/views/players:rows").
					WithBodyJson(JSON{"to": 4}).Do()
				Save(resp, "Rows - grouped", ``)

				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"from": 0,
					"rows": []JSON{
						{
							"row":         0,
							"kind":        "group",
							"value":       "blue",
							"title":       "blue",
							"count":       2,
							"groupingKey": []string{"blue"},
							"metadata": JSON{
								"selectable": false,
								"focusable":  false,
								"cssClasses": "slick-group slick-group-level-0 expanded",
								"colspan":    -1,
							},
						},
						itemRow(1, players[1]),
						itemRow(2, players[3]),
						{
							"row":         3,
							"kind":        "totals",
							"groupingKey": []string{"blue"},
							"totals":      JSON{"sum": JSON{"score": 19}},
							"metadata": JSON{
								"selectable": false,
								"focusable":  false,
								"cssClasses": "slick-group-totals slick-group-totals-level-0",
							},
						},
					},
					"length": 8,
					"paging": noPaging(4),
				})

				a.Alternative("Collapse group", func(a *biff.A) {
					resp := apiRequest("POST", "/views/players:collapseGroup").
						WithBodyJson(JSON{"path": []string{"blue"}}).Do()
					Save(resp, "Collapse group", ``)

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqualJson(infoBody(resp), viewInfo(4, 4, 5, noPaging(4), 1, 0))

					a.Alternative("Expand group", func(a *biff.A) {
						resp := apiRequest("POST", "/views/players:expandGroup").
							WithBodyJson(JSON{"path": []string{"blue"}}).Do()
						Save(resp, "Expand group", ``)

						biff.AssertEqual(resp.StatusCode, http.StatusOK)
						biff.AssertEqualJson(infoBody(resp), viewInfo(4, 4, 8, noPaging(4), 1, 0))
					})
				})

				a.Alternative("Collapse all groups", func(a *biff.A) {
					resp := apiRequest("POST", "/views/players:collapseGroup").
						WithBodyJson(JSON{"all": true}).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqualJson(infoBody(resp), viewInfo(4, 4, 2, noPaging(4), 1, 0))
				})
			})

			a.Alternative("Group with unknown aggregator", func(a *biff.A) {
				resp := apiRequest("POST", "/views/players:setGrouping").
					WithBodyJson(JSON{
						"levels": []JSON{
							{
								"field": "team",
								"aggregators": []JSON{
									{"type": "median", "field": "score"},
								},
							},
						},
					}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
			})

			a.Alternative("Collapse without grouping", func(a *biff.A) {
				resp := apiRequest("POST", "/views/players:collapseGroup").
					WithBodyJson(JSON{"all": true}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
			})

			a.Alternative("Paging", func(a *biff.A) {
				resp := apiRequest("POST", "/views/players:setPaging").
					WithBodyJson(JSON{"pageSize": 3}).Do()
				Save(resp, "Set paging", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"paging":  JSON{"pageSize": 3, "pageNum": 0, "totalRows": 4, "totalPages": 2},
					"applied": true,
				})

				a.Alternative("Page out of range", func(a *biff.A) {
					resp := apiRequest("POST", "/views/players:setPaging").
						WithBodyJson(JSON{"pageNum": 5}).Do()
					Save(resp, "Set paging - clamped page", ``)

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqualJson(resp.BodyJson(), JSON{
						"paging":  JSON{"pageSize": 3, "pageNum": 1, "totalRows": 4, "totalPages": 2},
						"applied": true,
					})

					resp = apiRequest("POST", "/views/players:rows").
						WithBodyJson(JSON{}).Do()
					biff.AssertEqualJson(rowIds(resp), []interface{}{4})
				})
			})

			a.Alternative("Select", func(a *biff.A) {
				resp := apiRequest("POST", "/views/players:select").
					WithBodyJson(JSON{"ids": []int{2, 4}}).Do()
				Save(resp, "Select", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"ids":         []int{2, 4},
					"filteredIds": []int{2, 4},
					"rows":        []int{1, 3},
				})

				a.Alternative("Filter drops hidden selection", func(a *biff.A) {
					apiRequest("POST", "/views/players:setFilter").
						WithBodyJson(JSON{
							"conditions": JSON{"score": JSON{"$gt": 8}},
						}).Do()

					resp := apiRequest("GET", "/views/players").Do()

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqualJson(infoBody(resp), viewInfo(4, 2, 2, noPaging(2), 0, 1))

					a.Alternative("Unselect", func(a *biff.A) {
						resp := apiRequest("POST", "/views/players:select").
							WithBodyJson(JSON{"ids": []int{4}, "remove": true}).Do()
						Save(resp, "Select - remove", ``)

						biff.AssertEqual(resp.StatusCode, http.StatusOK)
						biff.AssertEqualJson(resp.BodyJson(), JSON{
							"ids":         []int{},
							"filteredIds": []int{},
							"rows":        []int{},
						})
					})
				})

				a.Alternative("Rows show the selection", func(a *biff.A) {
					resp := apiRequest("POST", "/views/players:rows").
						WithBodyJson(JSON{"from": 3}).Do()

					biff.AssertEqualJson(resp.BodyJsonMap()["rows"], []JSON{
						{"row": 3, "kind": "item", "item": players[3], "selected": true},
					})
				})
			})

			a.Alternative("Select rows", func(a *biff.A) {
				resp := apiRequest("POST", "/views/players:select").
					WithBodyJson(JSON{"rows": []int{0, 2}}).Do()
				Save(resp, "Select - by rows", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"ids":         []int{1, 3},
					"filteredIds": []int{1, 3},
					"rows":        []int{0, 2},
				})
			})

			a.Alternative("Cell styles follow items", func(a *biff.A) {
				resp := apiRequest("POST", "/views/players:setCellStyles").
					WithBodyJson(JSON{
						"key": "warn",
						"styles": []JSON{
							{"id": 3, "columns": JSON{"score": "low"}},
						},
					}).Do()
				Save(resp, "Set cell styles", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)

				apiRequest("POST", "/views/players:sort").
					WithBodyJson(JSON{"field": "score"}).Do()

				resp = apiRequest("POST", "/views/players:rows").
					WithBodyJson(JSON{"to": 1}).Do()
				biff.AssertEqualJson(resp.BodyJsonMap()["rows"], []JSON{
					{
						"row":    0,
						"kind":   "item",
						"item":   players[2],
						"styles": JSON{"warn": JSON{"score": "low"}},
					},
				})
			})

			a.Alternative("Patch item", func(a *biff.A) {
				resp := apiRequest("POST", "/views/players:patchItem").
					WithBodyJson(JSON{
						"id":    1,
						"set":   JSON{"address.city": "Paris"},
						"unset": []string{"team"},
					}).Do()
				Save(resp, "Patch item", `
					Paths follow the sjson syntax.
				`)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"id":      1,
					"name":    "Ada",
					"score":   10,
					"address": JSON{"city": "Paris"},
				})
			})

			a.Alternative("Insert items", func(a *biff.A) {
				resp := apiRequest("POST", "/views/players:insertItems").
					WithBodyJson(JSON{
						"before": 1,
						"items":  []JSON{{"id": 9, "name": "Zoe"}},
					}).Do()
				Save(resp, "Insert items", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)

				resp = apiRequest("POST", "/views/players:rows").
					WithBodyJson(JSON{}).Do()
				biff.AssertEqualJson(rowIds(resp), []interface{}{1, 9, 2, 3, 4})
			})

			a.Alternative("Delete items", func(a *biff.A) {
				resp := apiRequest("POST", "/views/players:deleteItems").
					WithBodyJson(JSON{"ids": []int{1, 3}}).Do()
				Save(resp, "Delete items", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(infoBody(resp), viewInfo(2, 2, 2, noPaging(2), 0, 0))
			})

			a.Alternative("Delete unknown item", func(a *biff.A) {
				resp := apiRequest("POST", "/views/players:deleteItems").
					WithBodyJson(JSON{"ids": []int{99}}).Do()
				Save(resp, "Delete items - not found", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"error": JSON{
						"message":     "invalid id: 99",
						"description": "item does not exist",
					},
				})
			})
		})
	})

	a.Alternative("View not found", func(a *biff.A) {
		resp := apiRequest("POST", "/views/nobody:rows").
			WithBodyJson(JSON{}).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		biff.AssertEqualJson(resp.BodyJson(), JSON{
			"error": JSON{
				"message":     "view not found",
				"description": "view 'nobody' does not exist",
			},
		})
	})
}
