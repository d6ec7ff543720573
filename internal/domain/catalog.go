// Package domain holds the persistent entities of the winter fair game.
package domain

// Archetype identifies one of the three task state-machine shapes.
type Archetype string

const (
	// ArchetypeReaction is the timed-reaction shape: wait for the ready
	// window, then hit.
	ArchetypeReaction Archetype = "reaction"
	// ArchetypeChoice is the pick-from-options shape, single or multi.
	ArchetypeChoice Archetype = "choice"
	// ArchetypeSequence is the multi-step shape: fixed steps, repeat-N
	// or categorized accumulation.
	ArchetypeSequence Archetype = "sequence"
)

// Valid reports whether the archetype is one of the known shapes.
func (a Archetype) Valid() bool {
	switch a {
	case ArchetypeReaction, ArchetypeChoice, ArchetypeSequence:
		return true
	}
	return false
}

// Pavilion is an unlockable fair location offering a set of tasks.
type Pavilion struct {
	ID          int64
	Name        string
	Emoji       string
	Location    string
	Price       int64
	Reward      int64
	Description string
	Atmosphere  string
	TasksCount  int
}

// Task is a mini-game scoped to one pavilion.
type Task struct {
	ID         int64
	PavilionID int64
	Name       string
	Emoji      string
	Type       string
	Reward     int64
	FactID     int64
}

// Fact is a piece of trivia unlocked by completing a task.
type Fact struct {
	ID         int64
	PavilionID int64
	Text       string
}
