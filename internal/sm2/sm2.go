// Package sm2 schedules question reviews with a variant of the SuperMemo-2
// algorithm.
package sm2

import (
	"math"
	"time"
)

// Quality is a learner's self-reported recall strength.
type Quality int

const (
	QualityBlackout          Quality = 0
	QualityIncorrect         Quality = 1
	QualityIncorrectFamiliar Quality = 2
	QualityCorrectDifficult  Quality = 3
	QualityCorrectHesitation Quality = 4
	QualityPerfect           Quality = 5
)

const (
	// DefaultEasiness is the easiness factor assigned on first encounter.
	DefaultEasiness = 2.5
	// MinEasiness is the floor the easiness factor never drops below.
	MinEasiness = 1.3

	passThreshold = QualityCorrectDifficult
)

// Input is the memory state of a review item plus the grade just given.
type Input struct {
	Quality        float64
	EasinessFactor float64
	IntervalDays   int
	Repetitions    int
	LapseCount     int
}

// Result is the updated memory state and the next due date.
type Result struct {
	EasinessFactor float64
	IntervalDays   int
	Repetitions    int
	LapseCount     int
	DueAt          time.Time
}

// NewInput returns the input for a question that has never been reviewed.
func NewInput(quality float64) Input {
	return Input{Quality: quality, EasinessFactor: DefaultEasiness}
}

// ClampQuality rounds q and clamps it to [0, 5]. NaN becomes 0.
func ClampQuality(q float64) Quality {
	if math.IsNaN(q) {
		return QualityBlackout
	}
	r := math.Round(q)
	if r < float64(QualityBlackout) {
		return QualityBlackout
	}
	if r > float64(QualityPerfect) {
		return QualityPerfect
	}
	return Quality(r)
}

// Schedule applies one graded answer to the review state. Out-of-range
// inputs are sanitized rather than rejected.
func Schedule(in Input, now time.Time) Result {
	q := ClampQuality(in.Quality)

	ef := nextEasiness(in.EasinessFactor, q)
	reps := max(in.Repetitions, 0)
	interval := max(in.IntervalDays, 0)
	lapses := max(in.LapseCount, 0)

	if q < passThreshold {
		reps = 0
		interval = 1
		lapses++
	} else {
		reps++
		switch reps {
		case 1:
			interval = 1
		case 2:
			interval = 6
		default:
			interval = max(1, int(math.Round(float64(interval)*ef)))
		}
	}

	return Result{
		EasinessFactor: ef,
		IntervalDays:   interval,
		Repetitions:    reps,
		LapseCount:     lapses,
		DueAt:          now.AddDate(0, 0, interval),
	}
}

func nextEasiness(ef float64, q Quality) float64 {
	if math.IsNaN(ef) {
		ef = DefaultEasiness
	}
	miss := float64(QualityPerfect - q)
	ef += 0.1 - miss*(0.08+miss*0.02)
	return math.Max(MinEasiness, ef)
}
