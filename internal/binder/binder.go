// Package binder テンプレート文書に年月・活動場所・活動表を書き込む
package binder

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"clubreport/internal/docx"
	"clubreport/internal/model"
)

// 警告メッセージ
const (
	WarnYearMonthSkipped = "警告: 年月の更新が行われませんでした。"
	WarnLocationSkipped  = "警告: 活動場所の更新が行われませんでした。"
	WarnTableMissing     = "警告: 活動表が見つかりませんでした。"
)

// Values 書き込む値
type Values struct {
	Period   model.Period
	Location model.Location
	Batch    model.ReportBatch
}

// Result 書き込み結果
type Result struct {
	YearMonthPatched bool
	LocationPatched  int
	RowsWritten      int
	RowsCleared      int
	Warnings         []string
}

func (r *Result) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Binder テンプレートへの書き込み
type Binder struct {
	layout Layout
	logger *zap.Logger
}

// New Binder を作成する
func New(layout Layout, logger *zap.Logger) *Binder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Binder{layout: layout, logger: logger}
}

// Bind 3箇所を書き換える。形が合わない箇所は飛ばして警告に残す。
func (b *Binder) Bind(doc *docx.Document, v Values) Result {
	var res Result
	b.patchYearMonth(doc, v.Period, &res)
	b.patchLocation(doc, v.Location, &res)
	b.patchTable(doc, v.Batch, &res)

	b.logger.Debug("template bound",
		zap.Bool("year_month", res.YearMonthPatched),
		zap.Int("location_runs", res.LocationPatched),
		zap.Int("rows_written", res.RowsWritten),
		zap.Int("rows_cleared", res.RowsCleared),
		zap.Int("warnings", len(res.Warnings)),
	)
	return res
}

func (b *Binder) patchYearMonth(doc *docx.Document, p model.Period, res *Result) {
	paras := doc.Paragraphs()
	if len(paras) == 0 {
		res.warn(WarnYearMonthSkipped)
		return
	}

	heading := paras[0]
	runs := heading.Runs()
	text := heading.Text()
	if len(runs) < b.layout.MinHeadingRuns ||
		!strings.Contains(text, b.layout.YearMarker) ||
		!strings.Contains(text, b.layout.MonthMarker) {
		b.logger.Warn("heading paragraph does not match layout",
			zap.Int("runs", len(runs)), zap.String("text", text))
		res.warn(WarnYearMonthSkipped)
		return
	}

	if b.layout.YearRun < len(runs) {
		runs[b.layout.YearRun].SetText(p.YearSuffix())
	}
	if b.layout.MonthRun < len(runs) {
		runs[b.layout.MonthRun].SetText(strconv.Itoa(p.Month))
	}
	res.YearMonthPatched = true
}

func (b *Binder) patchLocation(doc *docx.Document, loc model.Location, res *Result) {
	label := loc.Label()
	for _, para := range doc.Paragraphs() {
		if !strings.Contains(para.Text(), b.layout.ClubMarker) {
			continue
		}
		for _, run := range para.Runs() {
			t := run.Text()
			if strings.Contains(t, "（") && strings.Contains(t, "）") {
				run.SetText(label)
				res.LocationPatched++
				break
			}
		}
	}
	if res.LocationPatched == 0 {
		res.warn(WarnLocationSkipped)
	}
}

func (b *Binder) patchTable(doc *docx.Document, batch model.ReportBatch, res *Result) {
	tables := doc.Tables()
	if len(tables) == 0 {
		res.warn(WarnTableMissing)
		return
	}

	rows := tables[0].Rows()
	first := b.layout.FirstDataRow
	if len(rows) <= first {
		b.logger.Warn("activity table has no data rows", zap.Int("rows", len(rows)))
		res.warn(WarnTableMissing)
		return
	}

	for i, e := range batch {
		idx := first + i
		if idx >= len(rows) {
			res.warn(fmt.Sprintf("警告: 表の行が足りないため %d 件の活動を書き込めませんでした。", len(batch)-i))
			break
		}
		cells := rows[idx].Cells()
		setCell(cells, 0, e.Date)
		setCell(cells, 1, e.Location)
		setCell(cells, 2, e.ParticipantsLabel())
		setCell(cells, 3, strings.Join(e.Activities, "\n"))
		res.RowsWritten++
	}

	end := min(b.layout.LastDataRow+1, len(rows))
	for i := first + len(batch); i < end; i++ {
		for _, c := range rows[i].Cells() {
			c.SetText("")
		}
		res.RowsCleared++
	}
}

func setCell(cells []docx.Cell, idx int, text string) {
	if idx < len(cells) {
		cells[idx].SetText(text)
	}
}
