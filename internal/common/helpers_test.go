package common_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"balabol/internal/common"
)

func TestPluralizeWords(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "слов"},
		{1, "слово"},
		{2, "слова"},
		{4, "слова"},
		{5, "слов"},
		{11, "слов"},
		{12, "слов"},
		{14, "слов"},
		{20, "слов"},
		{21, "слово"},
		{22, "слова"},
		{100, "слов"},
		{101, "слово"},
		{111, "слов"},
		{-3, "слова"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, common.PluralizeWords(tt.n), "n=%d", tt.n)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "привет", common.Truncate("привет", 10))
	assert.Equal(t, "привет", common.Truncate("привет", 6))
	assert.Equal(t, "при...", common.Truncate("привет", 3))
	assert.Equal(t, "", common.Truncate("", 5))
}
