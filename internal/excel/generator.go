package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/minsu/procure-budget/internal/format"
	"github.com/minsu/procure-budget/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate builds the budget-status workbook: one sheet listing each
// project's total, used and remaining budget.
func (g *Generator) Generate(report model.BudgetStatusReport) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "프로젝트 예산 현황"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "생성일")
	set("B1", format.Date(report.GeneratedAt))
	set("A2", "기간")
	set("B2", periodLabel(report))
	set("A3", "프로젝트 수")
	set("B3", len(report.Rows))

	tableRow := 5
	headers := []string{
		"프로젝트 번호",
		"담당자",
		"총 예산",
		"사용 예산",
		"잔여 예산",
		"상태",
		"생성일",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, row := range report.Rows {
		rowNum := tableRow + 1 + i
		set(fmt.Sprintf("A%d", rowNum), row.ProjectNumber)
		set(fmt.Sprintf("B%d", rowNum), row.Manager)
		set(fmt.Sprintf("C%d", rowNum), format.Number(row.TotalBudget))
		set(fmt.Sprintf("D%d", rowNum), format.Number(row.UsedBudget))
		set(fmt.Sprintf("E%d", rowNum), format.Number(row.RemainingBudget))
		set(fmt.Sprintf("F%d", rowNum), statusLabel(row.Status))
		set(fmt.Sprintf("G%d", rowNum), format.Date(row.CreatedAt))
	}

	_ = file.SetColWidth(sheet, "A", "A", 16)
	_ = file.SetColWidth(sheet, "B", "B", 14)
	_ = file.SetColWidth(sheet, "C", "E", 16)
	_ = file.SetColWidth(sheet, "F", "G", 13)

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func periodLabel(report model.BudgetStatusReport) string {
	switch {
	case report.FromDate != nil && report.ToDate != nil:
		return fmt.Sprintf("%s ~ %s", format.Date(*report.FromDate), format.Date(*report.ToDate))
	case report.FromDate != nil:
		return fmt.Sprintf("%s ~", format.Date(*report.FromDate))
	case report.ToDate != nil:
		return fmt.Sprintf("~ %s", format.Date(*report.ToDate))
	default:
		return "전체"
	}
}

func statusLabel(status model.ProjectStatus) string {
	switch status {
	case model.ProjectStatusActive:
		return "진행중"
	case model.ProjectStatusCompleted:
		return "완료"
	default:
		return "초안"
	}
}
