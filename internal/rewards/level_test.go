package rewards_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/bondflash/internal/rewards"
)

func TestCalculateLevel_BoundariesAreExact(t *testing.T) {
	for level := 1; level <= 50; level++ {
		assert.Equal(t, level, rewards.CalculateLevel(rewards.XPForLevel(level)), "floor of level %d", level)
		assert.Equal(t, level, rewards.CalculateLevel(rewards.XPForNextLevel(level)-1), "ceiling of level %d", level)
		assert.Equal(t, level+1, rewards.CalculateLevel(rewards.XPForNextLevel(level)), "next level after %d", level)
	}
}

func TestCalculateLevel(t *testing.T) {
	tests := []struct {
		xp       int
		expected int
	}{
		{-50, 1},
		{0, 1},
		{99, 1},
		{100, 2},
		{399, 2},
		{400, 3},
		{2500, 6},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, rewards.CalculateLevel(tt.xp), "xp=%d", tt.xp)
	}
}

func TestXPForLevel_ClampsBelowOne(t *testing.T) {
	assert.Equal(t, 0, rewards.XPForLevel(0))
	assert.Equal(t, 100, rewards.XPForNextLevel(-3))
	assert.Equal(t, 900, rewards.XPForLevel(4))
	assert.Equal(t, 1600, rewards.XPForNextLevel(4))
}

func TestLevelTitle(t *testing.T) {
	tests := []struct {
		level    int
		expected string
	}{
		{1, "Steady Starter"},
		{4, "Steady Starter"},
		{5, "Rising Partner"},
		{9, "Rising Partner"},
		{10, "Intimacy Adept"},
		{15, "Intimacy Guide"},
		{19, "Intimacy Guide"},
		{20, "Intimacy Sage"},
		{99, "Intimacy Sage"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, rewards.LevelTitle(tt.level), "level=%d", tt.level)
	}
}
