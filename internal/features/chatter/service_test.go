package chatter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"balabol/internal/features/chatter"
)

func TestService_ShouldInject_ReplyToBotAlwaysWins(t *testing.T) {
	// Реплай на сообщение бота — вброс даже при нулевой вероятности
	svc := chatter.NewService(0, func() float64 { return 0.99 })

	assert.True(t, svc.ShouldInject(true))
}

func TestService_ShouldInject_Probability(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		roll        float64
		want        bool
	}{
		{"roll below probability", 0.05, 0.04, true},
		{"roll equals probability", 0.05, 0.05, false},
		{"roll above probability", 0.05, 0.9, false},
		{"zero probability never fires", 0, 0, false},
		{"full probability always fires", 1, 0.999, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := chatter.NewService(tt.probability, func() float64 { return tt.roll })
			assert.Equal(t, tt.want, svc.ShouldInject(false))
		})
	}
}
