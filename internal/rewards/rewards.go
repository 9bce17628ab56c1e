// Package rewards converts learning and ritual events into experience,
// sparks and level transitions.
//
// Every function here is pure. Persisting the resulting Progression is the
// caller's job, as is serializing concurrent rewards for the same user.
package rewards

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// ErrUnknownEvent is returned by Quote for an event kind it cannot price.
var ErrUnknownEvent = errors.New("rewards: unknown event kind")

const (
	criticalChance = 0.1
	minSparks      = 5

	quizBaseXP         = 40
	quizXPPerQuestion  = 5
	quizAccuracyXP     = 40
	fastSecondsPerQ    = 12
	steadySecondsPerQ  = 20
	fastBonus          = 20
	steadyBonus        = 10
	ritualBaseXP       = 80
	ritualConnectionXP = 30
)

// RNG yields uniform values in [0, 1).
type RNG func() float64

// DefaultRNG is the process-wide uniform generator.
var DefaultRNG RNG = rand.Float64

// Progression is a user's persisted reward state.
type Progression struct {
	CurrentXP int
	Level     int
	Currency  int
}

// Outcome describes one rewarded action.
type Outcome struct {
	XPEarned        int    `json:"xpEarned"`
	SparksEarned    int    `json:"sparksEarned"`
	CriticalSuccess bool   `json:"criticalSuccess"`
	LevelUp         bool   `json:"levelUp"`
	Level           int    `json:"level"`
	CurrentXP       int    `json:"currentXP"`
	NextLevelXP     int    `json:"nextLevelXP"`
	Title           string `json:"title"`
}

// EventKind names a rewarded action.
type EventKind string

const (
	EventQuiz   EventKind = "quiz"
	EventRitual EventKind = "ritual"
)

// Event carries the facts needed to price a rewarded action. Quiz fields are
// ignored for rituals and vice versa.
type Event struct {
	Kind            EventKind
	CorrectCount    int
	TotalQuestions  int
	DurationSeconds *float64
	Shared          bool
}

// RollCritical reports whether this action is a critical success.
func RollCritical(rng RNG) bool {
	if rng == nil {
		rng = DefaultRNG
	}
	return rng() < criticalChance
}

// NormalizeSparks converts earned XP into currency, never less than 5.
func NormalizeSparks(xp int) int {
	return max(minSparks, int(math.Round(float64(xp)/10)))
}

// QuizXP prices a completed quiz before any critical multiplier. A nil
// duration earns no speed bonus.
func QuizXP(correct, total int, durationSeconds *float64) int {
	correct = max(correct, 0)
	total = max(total, 0)

	base := quizBaseXP + quizXPPerQuestion*total
	accuracy := int(math.Round(float64(correct) / float64(max(total, 1)) * quizAccuracyXP))

	speed := 0
	if durationSeconds != nil {
		switch d := *durationSeconds; {
		case d <= float64(fastSecondsPerQ*total):
			speed = fastBonus
		case d <= float64(steadySecondsPerQ*total):
			speed = steadyBonus
		}
	}
	return base + accuracy + speed
}

// RitualXP prices a logged ritual before any critical multiplier.
func RitualXP(shared bool) int {
	if shared {
		return ritualBaseXP + ritualConnectionXP
	}
	return ritualBaseXP
}

// Apply adds xp and sparks to p and recomputes the level from the new XP.
// The returned Outcome has CriticalSuccess unset.
func Apply(p Progression, xp, sparks int) (Progression, Outcome) {
	oldLevel := p.Level
	next := Progression{
		CurrentXP: p.CurrentXP + xp,
		Currency:  p.Currency + sparks,
	}
	next.Level = CalculateLevel(next.CurrentXP)

	return next, Outcome{
		XPEarned:     xp,
		SparksEarned: sparks,
		LevelUp:      next.Level > oldLevel,
		Level:        next.Level,
		CurrentXP:    next.CurrentXP,
		NextLevelXP:  XPForNextLevel(next.Level),
		Title:        LevelTitle(next.Level),
	}
}

// Calculator prices events with an injectable source of randomness.
type Calculator struct {
	RNG RNG
}

// NewCalculator returns a Calculator using rng, or DefaultRNG when nil.
func NewCalculator(rng RNG) *Calculator {
	if rng == nil {
		rng = DefaultRNG
	}
	return &Calculator{RNG: rng}
}

// Quote rolls for a critical and returns the XP and sparks ev earns.
func (c *Calculator) Quote(ev Event) (xp, sparks int, critical bool, err error) {
	switch ev.Kind {
	case EventQuiz:
		xp = QuizXP(ev.CorrectCount, ev.TotalQuestions, ev.DurationSeconds)
	case EventRitual:
		xp = RitualXP(ev.Shared)
	default:
		return 0, 0, false, fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Kind)
	}

	critical = RollCritical(c.RNG)
	if critical {
		xp *= 2
	}
	return xp, NormalizeSparks(xp), critical, nil
}
