// Package sampler 活動日ごとの参加人数と活動内容をランダムに生成する
package sampler

import (
	"fmt"
	"math/rand/v2"

	"clubreport/internal/model"
)

const (
	DefaultMinParticipants = 3
	DefaultMaxParticipants = 14
	DefaultPicks           = 3
)

// Sampler 重み付き抽選器
type Sampler struct {
	catalog         model.Catalog
	names           []string
	weights         []float64
	rng             *rand.Rand
	minParticipants int
	maxParticipants int
	picks           int
}

// New サンプラーを作成する
func New(catalog model.Catalog, rng *rand.Rand, opts ...Option) (*Sampler, error) {
	s := &Sampler{
		catalog:         catalog,
		names:           catalog.Names(),
		weights:         catalog.Normalized(),
		rng:             rng,
		minParticipants: DefaultMinParticipants,
		maxParticipants: DefaultMaxParticipants,
		picks:           DefaultPicks,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if s.minParticipants < 0 || s.minParticipants > s.maxParticipants {
		return nil, fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, s.minParticipants, s.maxParticipants)
	}
	if s.picks < 1 || catalog.Len() < s.picks {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientCatalogSize, catalog.Len(), s.picks)
	}
	return s, nil
}

// Participants 参加人数を一様分布で決める
func (s *Sampler) Participants() int {
	return s.minParticipants + s.rng.IntN(s.maxParticipants-s.minParticipants+1)
}

// Activities 重複のない活動を picks 個選ぶ（抽選順）
//
// まず復元抽出で選び、重複があれば捨てて非復元抽出をやり直す。
func (s *Sampler) Activities() ([]string, error) {
	picked := make([]string, s.picks)
	for i := range picked {
		picked[i] = s.names[s.draw(s.weights)]
	}
	if distinct(picked) {
		return picked, nil
	}
	return s.drawWithoutReplacement()
}

func (s *Sampler) drawWithoutReplacement() ([]string, error) {
	pool := make([]string, len(s.names))
	copy(pool, s.names)
	weights := make([]float64, len(s.weights))
	copy(weights, s.weights)

	out := make([]string, 0, s.picks)
	for len(out) < s.picks {
		if len(pool) == 0 {
			return nil, fmt.Errorf("%w: pool exhausted after %d picks", ErrInsufficientCatalogSize, len(out))
		}
		idx := s.draw(weights)
		out = append(out, pool[idx])
		pool = append(pool[:idx], pool[idx+1:]...)
		weights = append(weights[:idx], weights[idx+1:]...)
	}
	return out, nil
}

// draw 重みに比例してインデックスを1つ選ぶ。残りの重みで再正規化する。
func (s *Sampler) draw(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := s.rng.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return i
		}
	}
	// 浮動小数の丸めで末尾を超えた場合
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return len(weights) - 1
}

// Entry 1日分の報告データを作る
func (s *Sampler) Entry(period model.Period, day model.DayInput) (model.ReportEntry, error) {
	participants := s.Participants()
	activities, err := s.Activities()
	if err != nil {
		return model.ReportEntry{}, err
	}
	return model.ReportEntry{
		Date:         period.DateLabel(day.Day),
		Location:     day.Room,
		Participants: participants,
		Activities:   activities,
	}, nil
}

// Batch 入力された全活動日の報告データを作る
func (s *Sampler) Batch(req model.Request) (model.ReportBatch, error) {
	batch := make(model.ReportBatch, 0, len(req.Days))
	for _, d := range req.Days {
		e, err := s.Entry(req.Period, d)
		if err != nil {
			return nil, err
		}
		batch = append(batch, e)
	}
	return batch, nil
}

func distinct(items []string) bool {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			return false
		}
		seen[it] = struct{}{}
	}
	return true
}
