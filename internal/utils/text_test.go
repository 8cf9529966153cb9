package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{name: "fits", in: "hello", width: 5, want: "hello"},
		{name: "cut", in: "hello world", width: 8, want: "hello..."},
		{name: "tiny width", in: "hello", width: 2, want: "he"},
		{name: "zero width", in: "hello", width: 0, want: ""},
		{name: "wide runes", in: "日本語テキスト", width: 7, want: "日本..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.width))
		})
	}
}

func TestOneLine(t *testing.T) {
	assert.Equal(t, "a b c", OneLine("a\n  b\tc "))
}

func TestJoinIDs(t *testing.T) {
	assert.Equal(t, "1;4;9", JoinIDs([]int{1, 4, 9}, ";"))
	assert.Equal(t, "", JoinIDs(nil, ";"))
	assert.Equal(t, "#1 #4", HashIDs([]int{1, 4}))
	assert.Equal(t, "-", HashIDs(nil))
}
