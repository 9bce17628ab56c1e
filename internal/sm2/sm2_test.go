package sm2_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/bondflash/internal/sm2"
)

var jan1 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestSchedule_FirstSuccessfulReview(t *testing.T) {
	res := sm2.Schedule(sm2.Input{
		Quality:        4,
		EasinessFactor: 2.5,
		IntervalDays:   0,
		Repetitions:    0,
		LapseCount:     0,
	}, jan1)

	assert.Equal(t, 1, res.Repetitions)
	assert.Equal(t, 1, res.IntervalDays)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), res.DueAt)
	assert.InDelta(t, 2.5, res.EasinessFactor, 1e-9)
}

func TestSchedule_LowQualityResetsInterval(t *testing.T) {
	res := sm2.Schedule(sm2.Input{
		Quality:        1,
		EasinessFactor: 2.4,
		IntervalDays:   10,
		Repetitions:    3,
		LapseCount:     0,
	}, jan1)

	assert.Equal(t, 0, res.Repetitions)
	assert.Equal(t, 1, res.IntervalDays)
	assert.Equal(t, 1, res.LapseCount)
	assert.Less(t, res.EasinessFactor, 2.4)
}

func TestSchedule_ThirdSuccessGrowsInterval(t *testing.T) {
	res := sm2.Schedule(sm2.Input{
		Quality:        5,
		EasinessFactor: 2.5,
		IntervalDays:   6,
		Repetitions:    2,
	}, jan1)

	assert.Equal(t, 3, res.Repetitions)
	assert.GreaterOrEqual(t, res.IntervalDays, 15)
	assert.Equal(t, 16, res.IntervalDays, "6 * 2.6 rounds to 16")
}

func TestSchedule_FailuresAlwaysLapse(t *testing.T) {
	for q := 0; q <= 2; q++ {
		for _, reps := range []int{0, 1, 2, 7} {
			in := sm2.Input{Quality: float64(q), EasinessFactor: 2.5, IntervalDays: 30, Repetitions: reps, LapseCount: 4}
			res := sm2.Schedule(in, jan1)

			assert.Equal(t, 0, res.Repetitions, "q=%d reps=%d", q, reps)
			assert.Equal(t, 1, res.IntervalDays, "q=%d reps=%d", q, reps)
			assert.Equal(t, 5, res.LapseCount, "q=%d reps=%d", q, reps)
		}
	}
}

func TestSchedule_IntervalProgression(t *testing.T) {
	tests := []struct {
		name         string
		quality      float64
		ease         float64
		intervalDays int
		repetitions  int
		expected     int
	}{
		{name: "first success", quality: 3, ease: 2.5, intervalDays: 0, repetitions: 0, expected: 1},
		{name: "second success", quality: 4, ease: 2.5, intervalDays: 1, repetitions: 1, expected: 6},
		{name: "third success multiplies by updated ease", quality: 4, ease: 2.5, intervalDays: 6, repetitions: 2, expected: 15},
		{name: "hard success shrinks ease first", quality: 3, ease: 2.5, intervalDays: 10, repetitions: 5, expected: 24},
		{name: "zero interval is floored at one day", quality: 4, ease: 2.5, intervalDays: 0, repetitions: 4, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := sm2.Schedule(sm2.Input{
				Quality:        tt.quality,
				EasinessFactor: tt.ease,
				IntervalDays:   tt.intervalDays,
				Repetitions:    tt.repetitions,
			}, jan1)

			assert.Equal(t, tt.repetitions+1, res.Repetitions)
			assert.Equal(t, tt.expected, res.IntervalDays)
		})
	}
}

func TestSchedule_EasinessFloor(t *testing.T) {
	in := sm2.NewInput(0)
	for i := 0; i < 20; i++ {
		res := sm2.Schedule(in, jan1)
		require.GreaterOrEqual(t, res.EasinessFactor, sm2.MinEasiness)
		in = sm2.Input{
			Quality:        0,
			EasinessFactor: res.EasinessFactor,
			IntervalDays:   res.IntervalDays,
			Repetitions:    res.Repetitions,
			LapseCount:     res.LapseCount,
		}
	}
	assert.Equal(t, sm2.MinEasiness, in.EasinessFactor)
	assert.Equal(t, 20, in.LapseCount)
}

func TestSchedule_PerfectRaisesEasiness(t *testing.T) {
	res := sm2.Schedule(sm2.NewInput(5), jan1)
	assert.InDelta(t, 2.6, res.EasinessFactor, 1e-9)
}

func TestSchedule_CalendarDayAddition(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// DST starts 2024-03-10; the due date keeps the wall-clock time.
	now := time.Date(2024, 3, 9, 12, 30, 0, 0, ny)
	res := sm2.Schedule(sm2.NewInput(4), now)

	assert.Equal(t, time.Date(2024, 3, 10, 12, 30, 0, 0, ny), res.DueAt)
	assert.Equal(t, 23*time.Hour, res.DueAt.Sub(now))
}

func TestClampQuality(t *testing.T) {
	tests := []struct {
		in       float64
		expected sm2.Quality
	}{
		{-3, sm2.QualityBlackout},
		{0, sm2.QualityBlackout},
		{2.4, sm2.QualityIncorrectFamiliar},
		{2.5, sm2.QualityCorrectDifficult},
		{4.6, sm2.QualityPerfect},
		{11, sm2.QualityPerfect},
		{math.NaN(), sm2.QualityBlackout},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, sm2.ClampQuality(tt.in), "input %v", tt.in)
	}
}

func TestSchedule_OutOfRangeQualityIsClamped(t *testing.T) {
	high := sm2.Schedule(sm2.Input{Quality: 9, EasinessFactor: 2.5}, jan1)
	perfect := sm2.Schedule(sm2.Input{Quality: 5, EasinessFactor: 2.5}, jan1)
	assert.Equal(t, perfect, high)

	low := sm2.Schedule(sm2.Input{Quality: -2, EasinessFactor: 2.5, Repetitions: 3}, jan1)
	assert.Equal(t, 0, low.Repetitions)
	assert.Equal(t, 1, low.LapseCount)
}
