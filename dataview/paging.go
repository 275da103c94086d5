package dataview

type PagingOptions struct {
	PageSize *int `json:"pageSize,omitempty"`
	PageNum  *int `json:"pageNum,omitempty"`
}

type PagingInfo struct {
	PageSize   int `json:"pageSize"`
	PageNum    int `json:"pageNum"`
	TotalRows  int `json:"totalRows"`
	TotalPages int `json:"totalPages"`
}

// SetPagingOptions changes page size and/or page number. It returns false,
// changing nothing, when an OnBeforePagingInfoChanged handler vetoes it.
// A page size of zero disables paging.
func (dv *DataView) SetPagingOptions(options PagingOptions) bool {
	if !dv.OnBeforePagingInfoChanged.Notify(dv.GetPagingInfo()) {
		return false
	}

	if options.PageSize != nil {
		dv.pageSize = max(0, *options.PageSize)
		dv.pageNum = dv.clampPageNum(dv.pageNum)
	}
	if options.PageNum != nil {
		dv.pageNum = dv.clampPageNum(*options.PageNum)
	}

	dv.OnPagingInfoChanged.Notify(dv.GetPagingInfo())
	dv.Refresh()
	return true
}

func (dv *DataView) clampPageNum(pageNum int) int {
	if dv.pageSize <= 0 {
		return 0
	}
	return max(0, min(pageNum, ceilDiv(dv.totalRows, dv.pageSize)-1))
}

func (dv *DataView) GetPagingInfo() PagingInfo {
	totalPages := 1
	if dv.pageSize > 0 {
		totalPages = max(1, ceilDiv(dv.totalRows, dv.pageSize))
	}
	return PagingInfo{
		PageSize:   dv.pageSize,
		PageNum:    dv.pageNum,
		TotalRows:  dv.totalRows,
		TotalPages: totalPages,
	}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
