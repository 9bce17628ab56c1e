package sm2

import "math"

// Mastery maps an easiness factor onto a 0-100 percentage, where the floor
// reads as 0 and the starting easiness reads as 100.
func Mastery(ef float64) int {
	normalized := (ef - MinEasiness) / (DefaultEasiness - MinEasiness)
	normalized = math.Max(0, math.Min(1, normalized))
	return int(math.Round(normalized * 100))
}
