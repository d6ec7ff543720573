package domain

import "time"

// User represents a fair visitor profile stored in the database.
type User struct {
	ID             int64
	Coins          int64
	PavilionsOpen  []int64
	FactsCollected []int64
	TasksCompleted int64
	GuestsServed   int64
	CreatedAt      time.Time
}

// HasPavilion reports whether the user already opened the pavilion.
func (u *User) HasPavilion(pavilionID int64) bool {
	for _, id := range u.PavilionsOpen {
		if id == pavilionID {
			return true
		}
	}
	return false
}

// HasFact reports whether the fact is already in the user's collection.
func (u *User) HasFact(factID int64) bool {
	for _, id := range u.FactsCollected {
		if id == factID {
			return true
		}
	}
	return false
}

// Stats is the aggregate progress snapshot shown on the stats screen.
type Stats struct {
	Coins          int64
	GuestsServed   int64
	PavilionsOpen  int
	FactsCollected int
	TasksCompleted int64
}
