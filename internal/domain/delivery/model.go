package delivery

import (
	"strings"
	"time"
)

// Category is the scoring classification of one ball.
type Category string

const (
	CategoryLegal  Category = "LEGAL"
	CategoryWide   Category = "WIDE"
	CategoryNoBall Category = "NO_BALL"
	CategoryBye    Category = "BYE"
	CategoryLegBye Category = "LEG_BYE"
)

// BallsPerOver is the number of legal deliveries in one over.
const BallsPerOver = 6

// IsLegal reports whether the category consumes a ball of the over.
func (c Category) IsLegal() bool {
	switch c {
	case CategoryLegal, CategoryBye, CategoryLegBye:
		return true
	default:
		return false
	}
}

// ChargedToBowler reports whether extras of this category count against the bowler.
func (c Category) ChargedToBowler() bool {
	return c == CategoryWide || c == CategoryNoBall
}

// RawEvent is a ball as submitted by a scorer, before classification.
type RawEvent struct {
	Over          int
	Ball          int
	RunsScored    int
	ExtrasLabel   string
	ExtrasCount   int
	IsWicket      bool
	DismissalText string
	StrikerID     string
	NonStrikerID  string
	BowlerID      string
	Commentary    string
}

// Delivery is one accepted ball in a match log. It is immutable once stored.
type Delivery struct {
	ID            string
	MatchID       string
	Sequence      int
	Innings       int
	Over          int
	Ball          int
	Category      Category
	RunsScored    int
	BatterRuns    int
	ExtrasRuns    int
	IsWicket      bool
	Dismissal     string
	StrikerID     string
	NonStrikerID  string
	BowlerID      string
	BattingTeamID string
	Commentary    string
	CreatedAt     time.Time
}

// IsLegal reports whether the delivery counts toward the six-ball over.
func (d Delivery) IsLegal() bool {
	return d.Category.IsLegal()
}

// TotalRuns is every run the batting side gets from the delivery.
func (d Delivery) TotalRuns() int {
	return d.BatterRuns + d.ExtrasRuns
}

// BowlerRuns is the part of TotalRuns charged to the bowler.
func (d Delivery) BowlerRuns() int {
	if d.Category.ChargedToBowler() {
		return d.BatterRuns + d.ExtrasRuns
	}
	if d.Category == CategoryLegal {
		return d.BatterRuns
	}
	return 0
}

// RunsRun is the number of runs the batters crossed for: runs off the bat on
// a legal ball, the byes or leg-byes otherwise. Wides and no-balls run none.
func (d Delivery) RunsRun() int {
	switch d.Category {
	case CategoryLegal:
		return d.BatterRuns
	case CategoryBye, CategoryLegBye:
		return d.ExtrasRuns
	default:
		return 0
	}
}

// Faced reports whether the striker is credited with a ball faced.
func (d Delivery) Faced() bool {
	return d.IsLegal() && strings.TrimSpace(d.StrikerID) != ""
}

// Label renders the over.ball position, e.g. "3.4".
func (d Delivery) Label() string {
	return PositionLabel(d.Over, d.Ball)
}
