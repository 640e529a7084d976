package model

import (
	"fmt"
	"strconv"
)

// Location 活動場所（キャンパス）
type Location struct {
	Code string `toml:"code"`
	Name string `toml:"name"`
}

// Label 全角括弧付きの表示名（例: （八王子））
func (l Location) Label() string {
	return "（" + l.Name + "）"
}

// DefaultLocations 既定の活動場所
func DefaultLocations() []Location {
	return []Location{
		{Code: "h", Name: "八王子"},
		{Code: "s", Name: "新宿"},
	}
}

// FindLocation コードから活動場所を探す
func FindLocation(locations []Location, code string) (Location, bool) {
	for _, l := range locations {
		if l.Code == code {
			return l, true
		}
	}
	return Location{}, false
}

// Period 報告対象の年月
type Period struct {
	Year  int
	Month int
}

// YearSuffix 年の先頭2文字を除いた文字列（2025 → "25"）
func (p Period) YearSuffix() string {
	s := strconv.Itoa(p.Year)
	if len(s) < 2 {
		return s
	}
	return s[2:]
}

// DateLabel 表に書く日付（月/日）
func (p Period) DateLabel(day int) string {
	return fmt.Sprintf("%d/%d", p.Month, day)
}

// DayInput 入力された活動日と教室
type DayInput struct {
	Day  int
	Room string
}

// Request 入力収集の結果
type Request struct {
	Period   Period
	Location Location
	Days     []DayInput
}

// ReportEntry 1日分の報告データ
type ReportEntry struct {
	Date         string
	Location     string
	Participants int
	Activities   []string
}

// ParticipantsLabel 参加人数の表記（例: 8人）
func (e ReportEntry) ParticipantsLabel() string {
	return fmt.Sprintf("%d人", e.Participants)
}

// ReportBatch 報告データ（入力順）
type ReportBatch []ReportEntry

// TotalParticipants 参加人数の合計
func (b ReportBatch) TotalParticipants() int {
	total := 0
	for _, e := range b {
		total += e.Participants
	}
	return total
}
