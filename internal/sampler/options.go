package sampler

// Option サンプラーの設定
type Option func(*Sampler)

// WithParticipantRange 参加人数の範囲（両端を含む）
func WithParticipantRange(min, max int) Option {
	return func(s *Sampler) {
		s.minParticipants = min
		s.maxParticipants = max
	}
}

// WithPicks 1日あたりの活動数
func WithPicks(k int) Option {
	return func(s *Sampler) {
		s.picks = k
	}
}
