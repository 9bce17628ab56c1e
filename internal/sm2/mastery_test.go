package sm2_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/bondflash/internal/sm2"
)

func TestMastery(t *testing.T) {
	tests := []struct {
		name     string
		ef       float64
		expected int
	}{
		{"floor", 1.3, 0},
		{"starting easiness", 2.5, 100},
		{"below floor clamps", 0, 0},
		{"above start clamps", 3, 100},
		{"midpoint", 1.9, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sm2.Mastery(tt.ef))
		})
	}
}
