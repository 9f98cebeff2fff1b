package parser

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
)

// readGrid reads a sheet into typed cell values indexed [row][col] from 0.
// Empty cells are null; rows keep their position so range coordinates can
// be applied afterwards.
func readGrid(f *excelize.File, sheetName string) ([][]models.Value, error) {
	rows, err := f.Rows(sheetName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grid [][]models.Value
	rowNum := 0
	for rows.Next() {
		rowNum++ // 1-based row index
		cols, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, err
		}

		vals := make([]models.Value, len(cols))
		for colIdx, raw := range cols {
			if raw == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, err
			}
			vals[colIdx] = typedValue(raw, cellType)
		}
		grid = append(grid, vals)
	}
	return grid, rows.Error()
}

// typedValue converts a raw cell value using the cell's stored type.
// Numbers and dates stay numeric serials, booleans become Bool and every
// kind of string stays text.
func typedValue(raw string, cellType excelize.CellType) models.Value {
	switch cellType {
	case excelize.CellTypeBool:
		return models.Bool(raw == "1" || strings.EqualFold(raw, "true"))
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError, excelize.CellTypeDate:
		return models.Text(raw)
	}
	return parseValue(raw)
}

// parseValue attempts to parse a string value as a number.
// Returns a Number on success, or the original string as Text.
func parseValue(s string) models.Value {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return models.Number(f)
	}
	return models.Text(s)
}
