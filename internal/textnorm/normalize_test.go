package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{"Hello World", "hello world"},
		{"\t  MiXeD Case \n", "mixed case"},
		{"inner  spacing  kept", "inner  spacing  kept"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestNormalizeAllDropsEmpty(t *testing.T) {
	got := NormalizeAll([]string{" First Post ", "", "   ", "NEW here"})
	assert.Equal(t, []string{"first post", "new here"}, got)
	assert.Empty(t, NormalizeAll(nil))
}

func TestContainsAny(t *testing.T) {
	assert.True(t, ContainsAny("buy at spam.co now", []string{"x.com", "spam.co"}))
	assert.False(t, ContainsAny("nothing here", []string{"spam.co"}))
	// an empty pattern never matches
	assert.False(t, ContainsAny("anything", []string{""}))
	assert.False(t, ContainsAny("anything", []string{"   "}))
	// patterns are normalized before matching
	assert.True(t, ContainsAny("buy at spam.co now", []string{" SPAM.Co "}))
}
