// Package catalog is the task definition registry: the static, data-driven
// description of every pavilion, task and fact. Task topology lives here so
// the engine can run one generic state machine per archetype instead of
// branching per task id.
package catalog

import (
	"time"

	"github.com/winterfair/fairbot/internal/domain"
)

// Option is one selectable value with its button label.
type Option struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// ReactionStage is one delayed narration screen of a timed-reaction task.
type ReactionStage struct {
	Delay time.Duration `yaml:"delay"`
	Text  string        `yaml:"text"`
}

// ReactionSpec describes a timed-reaction task. When Instant is set, the
// hit window opens synchronously on entry (the zero-delay degenerate case);
// otherwise the narration walks Stages and opens the window with the Prompt
// after PromptDelay.
type ReactionSpec struct {
	Intro       string          `yaml:"intro"`
	Stages      []ReactionStage `yaml:"stages"`
	PromptDelay time.Duration   `yaml:"prompt_delay"`
	Prompt      string          `yaml:"prompt"`
	HitLabel    string          `yaml:"hit_label"`
	Instant     bool            `yaml:"instant"`
}

// ChoiceSpec describes a choice task. Correct empty means any pick
// succeeds. RequiredPicks greater than one turns the task into a multi-pick
// accumulator finished by an explicit done event. Next, when set, declares a
// successor sequence the session transitions into after the first accepted
// pick.
type ChoiceSpec struct {
	Prompt        string        `yaml:"prompt"`
	Options       []Option      `yaml:"options"`
	Correct       string        `yaml:"correct"`
	WrongText     string        `yaml:"wrong_text"`
	RequiredPicks int           `yaml:"required_picks"`
	Next          *SequenceSpec `yaml:"next"`
}

// SequenceMode selects the shape of a sequence task.
type SequenceMode string

const (
	// SequenceFixed advances through a fixed list of steps.
	SequenceFixed SequenceMode = "fixed"
	// SequenceRepeat repeats one action until a counter is satisfied.
	SequenceRepeat SequenceMode = "repeat"
	// SequenceCategorized counts per category, each capped independently.
	SequenceCategorized SequenceMode = "categorized"
)

// SequenceStep is one prompt of a fixed-step sequence.
type SequenceStep struct {
	Prompt  string   `yaml:"prompt"`
	Options []Option `yaml:"options"`
}

// RepeatSpec parameterizes a repeat-N sequence. Prompt is a format string
// receiving the current count and the requirement.
type RepeatSpec struct {
	Prompt      string `yaml:"prompt"`
	Action      string `yaml:"action"`
	ActionLabel string `yaml:"action_label"`
	Required    int    `yaml:"required"`
	DoneText    string `yaml:"done_text"`
}

// Category is one capped bucket of a categorized sequence.
type Category struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
	Cap   int    `yaml:"cap"`
}

// CategorizedSpec parameterizes a categorized accumulator.
type CategorizedSpec struct {
	Prompt     string     `yaml:"prompt"`
	Categories []Category `yaml:"categories"`
	DoneText   string     `yaml:"done_text"`
}

// SequenceSpec describes a sequence task; exactly one of Steps, Repeat or
// Categories is populated, matching Mode.
type SequenceSpec struct {
	Mode       SequenceMode     `yaml:"mode"`
	Steps      []SequenceStep   `yaml:"steps"`
	Repeat     *RepeatSpec      `yaml:"repeat"`
	Categories *CategorizedSpec `yaml:"categories"`
}

// MaxStep is the number of fixed steps; the advance event from the last
// step completes the task.
func (s *SequenceSpec) MaxStep() int {
	return len(s.Steps)
}

// Total returns the total number of increments a categorized sequence
// requires across all categories.
func (c *CategorizedSpec) Total() int {
	total := 0
	for _, category := range c.Categories {
		total += category.Cap
	}
	return total
}

// Satisfied reports whether every category reached its cap.
func (c *CategorizedSpec) Satisfied(counts map[string]int) bool {
	for _, category := range c.Categories {
		if counts[category.Value] < category.Cap {
			return false
		}
	}
	return true
}

// Lookup finds a category by its value token.
func (c *CategorizedSpec) Lookup(value string) (Category, bool) {
	for _, category := range c.Categories {
		if category.Value == value {
			return category, true
		}
	}
	return Category{}, false
}

// TaskSpec couples the persisted task row with its archetype topology.
type TaskSpec struct {
	Task domain.Task `yaml:"task"`

	Reaction *ReactionSpec `yaml:"reaction"`
	Choice   *ChoiceSpec   `yaml:"choice"`
	Sequence *SequenceSpec `yaml:"sequence"`
}

// Archetype returns the task's state-machine shape.
func (t *TaskSpec) Archetype() domain.Archetype {
	return domain.Archetype(t.Task.Type)
}

// MultiPick reports whether the choice task is a multi-pick accumulator.
func (c *ChoiceSpec) MultiPick() bool {
	return c.RequiredPicks > 1
}
