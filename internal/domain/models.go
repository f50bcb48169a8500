package domain

import "time"

// Difficulty is the difficulty band of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists every difficulty in display order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Category tags a question with its topic.
type Category string

// CategoryAll matches every category when picking a round.
const CategoryAll Category = "all"

// Question is a binary-choice trivia question. Options always holds exactly two entries.
type Question struct {
	ID                 int        `json:"id" yaml:"id" validate:"required,gt=0"`
	Prompt             string     `json:"prompt" yaml:"prompt" validate:"required"`
	Options            []string   `json:"options" yaml:"options" validate:"len=2,dive,required"`
	CorrectOptionIndex int        `json:"correctOptionIndex" yaml:"correctOptionIndex" validate:"min=0,max=1"`
	Category           Category   `json:"category" yaml:"category" validate:"required,ne=all"`
	Difficulty         Difficulty `json:"difficulty" yaml:"difficulty" validate:"oneof=easy medium hard"`
}

// RoundConfig is what the player picked before a round starts.
type RoundConfig struct {
	Category   Category   `json:"category"`
	Difficulty Difficulty `json:"difficulty"`
}

// Phase is the coarse-grained state of a trivia engine.
type Phase string

const (
	PhaseIntro          Phase = "intro"
	PhaseCategoryPick   Phase = "category_pick"
	PhaseDifficultyPick Phase = "difficulty_pick"
	PhaseCountdown      Phase = "countdown"
	PhasePlaying        Phase = "playing"
	PhaseResults        Phase = "results"
)

// EndReason says which trigger moved a round into Results.
type EndReason string

const (
	EndTimeUp    EndReason = "time_up"
	EndCompleted EndReason = "completed"
)

// Tier is a reward bracket assigned from the final score percentage.
type Tier struct {
	Label  string `json:"label"`
	Reward int    `json:"reward"`
}

// Result summarizes a finished round.
type Result struct {
	Score      int       `json:"score"`
	Answered   int       `json:"answered"`
	Percentage float64   `json:"percentage"`
	Tier       Tier      `json:"tier"`
	Reason     EndReason `json:"reason"`
}

// QuestionView is the player-facing view of a question. CorrectOptionIndex is only
// populated while the answer is being revealed.
type QuestionView struct {
	ID                 int        `json:"id"`
	Prompt             string     `json:"prompt"`
	Options            []string   `json:"options"`
	Category           Category   `json:"category"`
	Difficulty         Difficulty `json:"difficulty"`
	CorrectOptionIndex *int       `json:"correctOptionIndex,omitempty"`
}

// Snapshot is a point-in-time copy of an engine's observable state.
type Snapshot struct {
	Phase            Phase         `json:"phase"`
	Config           RoundConfig   `json:"config"`
	Question         *QuestionView `json:"question,omitempty"`
	CurrentIndex     int           `json:"currentIndex"`
	TotalQuestions   int           `json:"totalQuestions"`
	SecondsRemaining int           `json:"secondsRemaining"`
	Countdown        int           `json:"countdown"`
	SelectedOption   *int          `json:"selectedOption,omitempty"`
	Revealing        bool          `json:"revealing"`
	Answers          []bool        `json:"answers"`
	Score            int           `json:"score"`
	ExitPending      bool          `json:"exitPending"`
	Result           *Result       `json:"result,omitempty"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}
