package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"gradebook/internal/domain/journal"
)

// ExcelOpener читает рабочие книги журналов через excelize
type ExcelOpener struct{}

// NewExcelOpener создает читатель журналов
func NewExcelOpener() *ExcelOpener {
	return &ExcelOpener{}
}

// Open открывает книгу и читает активный лист
// Файл остается открытым до вызова Workbook.Close
func (o *ExcelOpener) Open(path string) (*journal.Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}

	sheet, err := ReadActiveSheet(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	return journal.NewWorkbook(path, sheet, f), nil
}

// ReadActiveSheet читает активный лист книги в модель журнала
func ReadActiveSheet(f *excelize.File) (*journal.Sheet, error) {
	sheetName := f.GetSheetName(f.GetActiveSheetIndex())
	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("no sheets found in Excel file")
		}
		sheetName = sheets[0]
	}
	return ReadSheet(f, sheetName)
}

// ReadSheet читает лист, сохраняя различие между числами и строками
func ReadSheet(f *excelize.File, sheetName string) (*journal.Sheet, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	grid := make([][]journal.Cell, len(rows))
	for rowIdx, row := range rows {
		cells := make([]journal.Cell, len(row))
		for colIdx, value := range row {
			if value == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, fmt.Errorf("failed to get type of %s: %w", cellName, err)
			}
			cells[colIdx] = classifyCell(cellType, value)
		}
		grid[rowIdx] = cells
	}

	return journal.NewSheet(sheetName, grid), nil
}

// classifyCell определяет вид значения: строки остаются строками даже если похожи на число
func classifyCell(cellType excelize.CellType, value string) journal.Cell {
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return journal.TextCell(value)
	case excelize.CellTypeBool, excelize.CellTypeError:
		return journal.TextCell(value)
	}

	if num, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
		return journal.Cell{Kind: journal.CellNumber, Raw: value, Number: num}
	}
	return journal.TextCell(value)
}
