package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCatalog カタログ定義が不正
var ErrInvalidCatalog = errors.New("invalid activity catalog")

// Activity 活動カタログの1項目（活動名と抽選の重み）
type Activity struct {
	Name   string  `toml:"name"`
	Weight float64 `toml:"weight"`
}

// Catalog 活動カタログ（生成後は変更不可）
type Catalog struct {
	entries []Activity
	total   float64
}

// DefaultActivities 既定の活動カタログ
func DefaultActivities() []Activity {
	return []Activity{
		{Name: "ポケモンSV通信対戦", Weight: 30},
		{Name: "ポケモンカードゲーム", Weight: 45},
		{Name: "ポケカ開封会", Weight: 10},
		{Name: "絵しりとり", Weight: 10},
		{Name: "ホワイトボードアート", Weight: 10},
		{Name: "情報交換", Weight: 10},
		{Name: "ポケモンユナイト", Weight: 10},
		{Name: "ポケモンソードシールド", Weight: 10},
		{Name: "ポケモンポンジャン", Weight: 10},
		{Name: "サークル会議", Weight: 0.3},
	}
}

// NewCatalog 活動一覧からカタログを作成する
func NewCatalog(activities []Activity) (Catalog, error) {
	seen := make(map[string]struct{}, len(activities))
	entries := make([]Activity, 0, len(activities))
	total := 0.0
	for i, a := range activities {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			return Catalog{}, fmt.Errorf("%w: entry %d has empty name", ErrInvalidCatalog, i)
		}
		if !(a.Weight > 0) {
			return Catalog{}, fmt.Errorf("%w: %q weight must be positive, got %v", ErrInvalidCatalog, name, a.Weight)
		}
		if _, dup := seen[name]; dup {
			return Catalog{}, fmt.Errorf("%w: duplicate activity %q", ErrInvalidCatalog, name)
		}
		seen[name] = struct{}{}
		entries = append(entries, Activity{Name: name, Weight: a.Weight})
		total += a.Weight
	}
	return Catalog{entries: entries, total: total}, nil
}

// MustDefaultCatalog 既定カタログ（定義済みのため失敗しない）
func MustDefaultCatalog() Catalog {
	c, err := NewCatalog(DefaultActivities())
	if err != nil {
		panic(err)
	}
	return c
}

// Len 項目数
func (c Catalog) Len() int {
	return len(c.entries)
}

// Entries 項目のコピー
func (c Catalog) Entries() []Activity {
	out := make([]Activity, len(c.entries))
	copy(out, c.entries)
	return out
}

// Names 活動名一覧
func (c Catalog) Names() []string {
	out := make([]string, len(c.entries))
	for i, a := range c.entries {
		out[i] = a.Name
	}
	return out
}

// TotalWeight 重みの合計
func (c Catalog) TotalWeight() float64 {
	return c.total
}

// Normalized 正規化した重み（合計1）
func (c Catalog) Normalized() []float64 {
	out := make([]float64, len(c.entries))
	if c.total <= 0 {
		return out
	}
	for i, a := range c.entries {
		out[i] = a.Weight / c.total
	}
	return out
}

// Contains 活動名がカタログに含まれるか
func (c Catalog) Contains(name string) bool {
	for _, a := range c.entries {
		if a.Name == name {
			return true
		}
	}
	return false
}
