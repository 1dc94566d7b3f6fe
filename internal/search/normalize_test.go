package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Müşteri Raporları", "musteri raporlari"},
		{"Yılmaz", "yilmaz"},
		{"İZGAHI", "izgahi"},
		{"ıİiI", "iiii"},
		{"Crème Brûlée", "creme brulee"},
		{"ASCII only", "ascii only"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Fold(tc.in), "folding %q", tc.in)
	}
}

func TestMatch(t *testing.T) {
	t.Run("matches across diacritics", func(t *testing.T) {
		assert.True(t, Match("Gülşah Öztürk", "gulsah"))
		assert.True(t, Match("mert izgahi", "IZGAHI"))
	})

	t.Run("ASCII query finds dotless i", func(t *testing.T) {
		assert.True(t, Match("Ayşe Yılmaz", "yilmaz"))
	})

	t.Run("needle folding is symmetric", func(t *testing.T) {
		assert.True(t, Match("plain name", "NAMÉ"))
	})

	t.Run("no match", func(t *testing.T) {
		assert.False(t, Match("Gülşah Öztürk", "kokpit"))
	})

	t.Run("empty needle matches", func(t *testing.T) {
		assert.True(t, Match("anything", ""))
	})
}
