package prompt

import (
	"time"

	"clubreport/internal/model"
)

// Option 入力収集の設定
type Option func(*Collector)

// WithClock 既定の年月に使う現在時刻
func WithClock(now func() time.Time) Option {
	return func(c *Collector) {
		c.now = now
	}
}

// WithLocations 選択できる活動場所
func WithLocations(locations []model.Location) Option {
	return func(c *Collector) {
		c.locations = locations
	}
}

// WithMaxDays 入力できる活動日の上限
func WithMaxDays(n int) Option {
	return func(c *Collector) {
		c.maxDays = n
	}
}
