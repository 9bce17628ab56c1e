package rewards

// Achievement slugs.
const (
	AchievementQuizMaster = "quiz-master"
	AchievementFirstQuiz  = "first-quiz"
	AchievementFirstHug   = "first-hug"
)

// Trigger is what EvaluateAchievements needs to know about a rewarded
// action and the state before it was applied.
type Trigger struct {
	Kind           EventKind
	CorrectCount   int
	TotalQuestions int
	// PriorXP is the user's XP before this action's reward.
	PriorXP int
	// Unlocked holds slugs the user already owns.
	Unlocked map[string]bool
}

// EvaluateAchievements returns the slugs newly earned by t, in a stable
// order. Slugs already in t.Unlocked are never returned, so evaluating the
// same trigger twice against updated state yields nothing new.
//
// The first-quiz check keys off PriorXP == 0, which cannot tell a first
// action apart from a user whose XP was reset.
func EvaluateAchievements(t Trigger) []string {
	var earned []string
	add := func(slug string) {
		if !t.Unlocked[slug] {
			earned = append(earned, slug)
		}
	}

	switch t.Kind {
	case EventQuiz:
		if t.CorrectCount == t.TotalQuestions {
			add(AchievementQuizMaster)
		}
		if t.PriorXP == 0 {
			add(AchievementFirstQuiz)
		}
	case EventRitual:
		add(AchievementFirstHug)
	}
	return earned
}
