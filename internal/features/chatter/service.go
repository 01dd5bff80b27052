// Package chatter — пассивные ответы бота: вброс случайного слова в обычный
// разговор. service.go решает, отвечать ли вообще.
package chatter

// Service — политика пассивных ответов.
// Бот отвечает всегда, когда реплаят его собственное сообщение, и с
// заданной вероятностью на любое другое сообщение.
type Service struct {
	probability float64
	// randFloat — источник случайности [0, 1); подменяется в тестах
	randFloat func() float64
}

// NewService создаёт политику пассивных ответов.
// probability — вероятность вброса (по умолчанию 0.05),
// randFloat — обычно rand.Float64.
func NewService(probability float64, randFloat func() float64) *Service {
	return &Service{probability: probability, randFloat: randFloat}
}

// ShouldInject решает, вбрасывать ли случайное слово.
// Реплай на сообщение бота — вброс всегда; иначе бросаем кубик.
func (s *Service) ShouldInject(isReplyToBot bool) bool {
	if isReplyToBot {
		return true
	}
	return s.randFloat() < s.probability
}
