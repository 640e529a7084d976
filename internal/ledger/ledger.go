// Package ledger 報告内容を Excel の活動記録として書き出す
package ledger

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"clubreport/internal/model"
)

const (
	RecordSheet  = "活動記録"
	SummarySheet = "集計"
)

// Filename 活動記録のファイル名（例: 2025年3月活動記録（八王子）.xlsx）
func Filename(p model.Period, loc model.Location) string {
	return fmt.Sprintf("%d年%d月活動記録%s.xlsx", p.Year, p.Month, loc.Label())
}

// Build 活動記録ブックを作る
func Build(p model.Period, loc model.Location, batch model.ReportBatch) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", RecordSheet); err != nil {
		_ = f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		_ = f.Close()
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	if err := writeRecords(f, batch, headerStyle); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write %s: %w", RecordSheet, err)
	}
	if err := writeSummary(f, p, loc, batch, headerStyle); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write %s: %w", SummarySheet, err)
	}

	f.SetActiveSheet(0)
	return f, nil
}

// Write 活動記録ブックを path に保存する
func Write(path string, p model.Period, loc model.Location, batch model.ReportBatch) error {
	f, err := Build(p, loc, batch)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

func writeRecords(f *excelize.File, batch model.ReportBatch, headerStyle int) error {
	picks := 3
	for _, e := range batch {
		picks = max(picks, len(e.Activities))
	}

	headers := []interface{}{"日付", "活動場所", "参加人数"}
	for i := 1; i <= picks; i++ {
		headers = append(headers, fmt.Sprintf("活動%d", i))
	}
	if err := f.SetSheetRow(RecordSheet, "A1", &headers); err != nil {
		return err
	}
	if err := f.SetRowStyle(RecordSheet, 1, 1, headerStyle); err != nil {
		return err
	}

	for i, e := range batch {
		row := []interface{}{e.Date, e.Location, e.Participants}
		for _, a := range e.Activities {
			row = append(row, a)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(RecordSheet, cell, &row); err != nil {
			return err
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(RecordSheet, "A", "C", 12); err != nil {
		return err
	}
	return f.SetColWidth(RecordSheet, "D", lastCol, 24)
}

type activityCount struct {
	name  string
	count int
}

func countActivities(batch model.ReportBatch) []activityCount {
	counts := make(map[string]int)
	for _, e := range batch {
		for _, a := range e.Activities {
			counts[a]++
		}
	}
	out := make([]activityCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, activityCount{name: name, count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].name < out[j].name
	})
	return out
}

func writeSummary(f *excelize.File, p model.Period, loc model.Location, batch model.ReportBatch, headerStyle int) error {
	rows := [][]interface{}{
		{"対象", fmt.Sprintf("%d年%d月%s", p.Year, p.Month, loc.Label())},
		{"活動日数", len(batch)},
		{"参加人数合計", batch.TotalParticipants()},
		{},
		{"活動", "回数"},
	}
	for _, c := range countActivities(batch) {
		rows = append(rows, []interface{}{c.name, c.count})
	}

	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(SummarySheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SetRowStyle(SummarySheet, 5, 5, headerStyle); err != nil {
		return err
	}
	return f.SetColWidth(SummarySheet, "A", "A", 24)
}
