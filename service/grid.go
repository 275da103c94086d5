package service

import (
	"slices"

	"github.com/fulldump/dataview/dataview"
)

// Grid is a headless grid: it only remembers its selection and cell styles,
// so a remote client can read them back with the rows.
type Grid struct {
	multiSelect     bool
	selectedRows    []int
	cellStyles      map[string]map[int]dataview.StyleHash
	onSelectedRows  *dataview.Event[dataview.SelectedRowsChangedArgs]
	onCellCssStyles *dataview.Event[dataview.CellCssStylesChangedArgs]
}

func NewGrid(multiSelect bool) *Grid {
	return &Grid{
		multiSelect:     multiSelect,
		selectedRows:    []int{},
		cellStyles:      map[string]map[int]dataview.StyleHash{},
		onSelectedRows:  dataview.NewEvent[dataview.SelectedRowsChangedArgs](),
		onCellCssStyles: dataview.NewEvent[dataview.CellCssStylesChangedArgs](),
	}
}

func (g *Grid) GetSelectedRows() []int {
	return g.selectedRows
}

// SetSelectedRows keeps only the first row when multi select is off.
func (g *Grid) SetSelectedRows(rows []int) {
	rows = slices.Clone(rows)
	if !g.multiSelect && len(rows) > 1 {
		rows = rows[:1]
	}
	g.selectedRows = rows
	g.onSelectedRows.Notify(dataview.SelectedRowsChangedArgs{Rows: rows})
}

func (g *Grid) MultiSelect() bool {
	return g.multiSelect
}

func (g *Grid) OnSelectedRowsChanged() *dataview.Event[dataview.SelectedRowsChangedArgs] {
	return g.onSelectedRows
}

func (g *Grid) GetCellCssStyles(key string) map[int]dataview.StyleHash {
	return g.cellStyles[key]
}

// SetCellCssStyles with a nil hash removes the key.
func (g *Grid) SetCellCssStyles(key string, hash map[int]dataview.StyleHash) {
	if hash == nil {
		delete(g.cellStyles, key)
	} else {
		g.cellStyles[key] = hash
	}
	g.onCellCssStyles.Notify(dataview.CellCssStylesChangedArgs{Key: key, Hash: hash})
}

func (g *Grid) OnCellCssStylesChanged() *dataview.Event[dataview.CellCssStylesChangedArgs] {
	return g.onCellCssStyles
}

func (g *Grid) isSelected(row int) bool {
	return slices.Contains(g.selectedRows, row)
}

// stylesOf collects the styles of a row for every key.
func (g *Grid) stylesOf(row int) map[string]dataview.StyleHash {
	var styles map[string]dataview.StyleHash
	for key, hash := range g.cellStyles {
		style, ok := hash[row]
		if !ok {
			continue
		}
		if styles == nil {
			styles = map[string]dataview.StyleHash{}
		}
		styles[key] = style
	}
	return styles
}
