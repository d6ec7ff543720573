// Package session manages per-user, per-task game sessions: the mutable
// progress record that exists only while a task attempt is in flight.
package session

import (
	"time"

	"github.com/winterfair/fairbot/internal/domain"
)

// Session tracks one task attempt, keyed by (user, task). Exactly one of
// the archetype state fields is populated, matching Archetype.
type Session struct {
	UserID     int64            `json:"user_id"`
	TaskID     int64            `json:"task_id"`
	PavilionID int64            `json:"pavilion_id"`
	Archetype  domain.Archetype `json:"archetype"`
	// Epoch identifies one attempt. Staged narration writes compare it
	// before touching the chat so a restart or cancel invalidates any
	// in-flight delay sequence.
	Epoch     int64     `json:"epoch"`
	StartedAt time.Time `json:"started_at"`

	Reaction *ReactionState `json:"reaction,omitempty"`
	Choice   *ChoiceState   `json:"choice,omitempty"`
	Sequence *SequenceState `json:"sequence,omitempty"`
}

// ReactionState is the timed-reaction variant: Ready is true only inside
// the hit window opened by the narration timer.
type ReactionState struct {
	Ready bool `json:"ready"`
}

// ChoiceState is the choice variant; Picks accumulates selections for
// multi-pick tasks.
type ChoiceState struct {
	Picks []string `json:"picks,omitempty"`
}

// SequenceState is the sequence variant. Step drives fixed-step tasks,
// Counter drives repeat-N tasks and Counts drives categorized tasks.
type SequenceState struct {
	Step    int            `json:"step"`
	Counter int            `json:"counter"`
	Counts  map[string]int `json:"counts,omitempty"`
}

// Clone returns a deep copy so stored sessions cannot be mutated through
// shared pointers.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}

	copied := *s
	if s.Reaction != nil {
		reaction := *s.Reaction
		copied.Reaction = &reaction
	}
	if s.Choice != nil {
		choice := ChoiceState{Picks: append([]string(nil), s.Choice.Picks...)}
		copied.Choice = &choice
	}
	if s.Sequence != nil {
		seq := SequenceState{Step: s.Sequence.Step, Counter: s.Sequence.Counter}
		if s.Sequence.Counts != nil {
			seq.Counts = make(map[string]int, len(s.Sequence.Counts))
			for category, count := range s.Sequence.Counts {
				seq.Counts[category] = count
			}
		}
		copied.Sequence = &seq
	}

	return &copied
}
