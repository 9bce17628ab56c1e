package rewards

import "math"

const xpPerLevelUnit = 100

// CalculateLevel returns the level reached with xp experience points:
// max(1, floor(sqrt(xp/100)) + 1).
func CalculateLevel(xp int) int {
	if xp <= 0 {
		return 1
	}
	// Float sqrt seeds the guess; the loops make the boundaries exact.
	n := int(math.Sqrt(float64(xp) / xpPerLevelUnit))
	for (n+1)*(n+1)*xpPerLevelUnit <= xp {
		n++
	}
	for n > 0 && n*n*xpPerLevelUnit > xp {
		n--
	}
	return n + 1
}

// XPForLevel is the experience floor of level.
func XPForLevel(level int) int {
	level = max(1, level)
	return (level - 1) * (level - 1) * xpPerLevelUnit
}

// XPForNextLevel is the experience needed to reach level+1.
func XPForNextLevel(level int) int {
	level = max(1, level)
	return level * level * xpPerLevelUnit
}

// LevelTitle returns the honorific shown for level.
func LevelTitle(level int) string {
	switch {
	case level >= 20:
		return "Intimacy Sage"
	case level >= 15:
		return "Intimacy Guide"
	case level >= 10:
		return "Intimacy Adept"
	case level >= 5:
		return "Rising Partner"
	default:
		return "Steady Starter"
	}
}
