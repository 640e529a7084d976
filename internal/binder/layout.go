package binder

// Layout テンプレートの構造（段落・ラン・行の位置）
//
// テンプレート側の構造が変わると書き込み位置もずれる。
type Layout struct {
	YearMarker     string
	MonthMarker    string
	ClubMarker     string
	MinHeadingRuns int
	YearRun        int
	MonthRun       int
	FirstDataRow   int
	LastDataRow    int
}

// DefaultLayout 既定テンプレートの構造
func DefaultLayout() Layout {
	return Layout{
		YearMarker:     "年",
		MonthMarker:    "月",
		ClubMarker:     "サークル名　工学院ポケモンだいすきクラブ",
		MinHeadingRuns: 5,
		YearRun:        1,
		MonthRun:       3,
		FirstDataRow:   2,
		LastDataRow:    7,
	}
}

// DataRows 書き込める行数
func (l Layout) DataRows() int {
	if l.LastDataRow < l.FirstDataRow {
		return 0
	}
	return l.LastDataRow - l.FirstDataRow + 1
}
