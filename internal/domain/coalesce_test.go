package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoalesceStr(t *testing.T) {
	tests := []struct {
		name string
		vals []string
		want string
	}{
		{"first non-empty wins", []string{"", "Fräsen", "AG10"}, "Fräsen"},
		{"all empty", []string{"", ""}, ""},
		{"no values", nil, ""},
		{"first already set", []string{"W100", "fallback"}, "W100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoalesceStr(tt.vals...))
		})
	}
}
