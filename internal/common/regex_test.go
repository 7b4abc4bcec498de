package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		description string
		want        bool
	}{
		{name: "simple match", pattern: ".*swiggy.*", description: "upi-swiggy-order", want: true},
		{name: "description case ignored", pattern: ".*swiggy.*", description: "UPI-SWIGGY-ORDER", want: true},
		{name: "no match", pattern: ".*zomato.*", description: "upi-swiggy-order", want: false},
		{name: "alternation", pattern: ".*(swiggy|zomato).*", description: "ZOMATO DINNER", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MatchPattern(tt.pattern, tt.description)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchPatternInvalid(t *testing.T) {
	_, err := MatchPattern("[unclosed", "anything")
	assert.ErrorIs(t, err, ErrInvalidPattern)
}
