package parser

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
)

// EmptyHeader names columns whose header cell is blank.
const EmptyHeader = "__EMPTY"

// area is a 0-based inclusive cell rectangle.
type area struct {
	minRow, maxRow, minCol, maxCol int
}

// sheetToDataset treats the first non-empty row of the used range as the
// header and every following non-blank row as a data row.
func sheetToDataset(grid [][]models.Value) *models.Dataset {
	minRow, maxRow, minCol, maxCol := findDataBounds(grid)
	if minRow < 0 {
		return &models.Dataset{}
	}
	return tableToDataset(grid, area{minRow: minRow, maxRow: maxRow, minCol: minCol, maxCol: maxCol})
}

// tableToDataset maps the rows of a rectangle by header position. The first
// row of the rectangle is the header.
func tableToDataset(grid [][]models.Value, a area) *models.Dataset {
	header := make([]models.Value, 0, a.maxCol-a.minCol+1)
	for col := a.minCol; col <= a.maxCol; col++ {
		header = append(header, cellAt(grid, a.minRow, col))
	}
	columns := headerNames(header)

	d := &models.Dataset{Columns: columns}
	for rowIdx := a.minRow + 1; rowIdx <= a.maxRow && rowIdx < len(grid); rowIdx++ {
		row := make(models.Row)
		for i, name := range columns {
			if v := cellAt(grid, rowIdx, a.minCol+i); !v.IsNull() {
				row[name] = v
			}
		}
		if len(row) > 0 {
			d.Rows = append(d.Rows, row)
		}
	}
	return d
}

func cellAt(grid [][]models.Value, row, col int) models.Value {
	if row < 0 || row >= len(grid) || col < 0 || col >= len(grid[row]) {
		return models.Null()
	}
	return grid[row][col]
}

// headerNames names header cells. Blank cells become __EMPTY and repeated
// names get _1, _2, ... suffixes in order of appearance.
func headerNames(cells []models.Value) []string {
	used := make(map[string]int)
	names := make([]string, 0, len(cells))
	for _, c := range cells {
		base := strings.TrimSpace(c.String())
		if base == "" {
			base = EmptyHeader
		}
		name := base
		if n := used[base]; n > 0 {
			for {
				name = base + "_" + strconv.Itoa(n)
				n++
				if used[name] == 0 {
					break
				}
			}
			used[base] = n
		} else {
			used[base] = 1
		}
		used[name] = max(used[name], 1)
		names = append(names, name)
	}
	return names
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(grid [][]models.Value) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range grid {
		for colIdx, cell := range row {
			if cell.IsNull() {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}

// parseRange parses a range string like $A$1:$D$10 into a 0-based area.
func parseRange(rangeStr string) (area, error) {
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) != 2 {
		return area{}, errors.Newf("invalid range %q", rangeStr)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return area{}, err
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return area{}, err
	}

	return area{
		minRow: min(startRow, endRow) - 1,
		maxRow: max(startRow, endRow) - 1,
		minCol: min(startCol, endCol) - 1,
		maxCol: max(startCol, endCol) - 1,
	}, nil
}
