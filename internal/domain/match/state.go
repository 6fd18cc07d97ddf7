package match

import (
	"fmt"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/cricket-scorer/internal/domain/delivery"
)

// Phase is the position of a match in the innings lifecycle.
type Phase string

const (
	PhaseAwaitingFirstInnings Phase = "AWAITING_FIRST_INNINGS"
	PhaseInningsInProgress    Phase = "INNINGS_IN_PROGRESS"
	PhaseInningsComplete      Phase = "INNINGS_COMPLETE"
	PhaseMatchComplete        Phase = "MATCH_COMPLETE"
)

const MaxWickets = 10

type MarginKind string

const (
	MarginRuns    MarginKind = "RUNS"
	MarginWickets MarginKind = "WICKETS"
)

// Result is the outcome of a completed match.
type Result struct {
	WinnerTeamID string
	Tie          bool
	Margin       int
	MarginKind   MarginKind
}

// Describe renders the result line using the winner's display name.
func (r Result) Describe(winnerName string) string {
	if r.Tie {
		return "Match tied"
	}
	if winnerName == "" {
		winnerName = r.WinnerTeamID
	}
	unit := "run"
	if r.MarginKind == MarginWickets {
		unit = "wicket"
	}
	if r.Margin != 1 {
		unit += "s"
	}
	return fmt.Sprintf("%s won by %d %s", winnerName, r.Margin, unit)
}

// InningsTotal is the running score of one innings.
type InningsTotal struct {
	BattingTeamID string
	Runs          int
	Wickets       int
	LegalBalls    int
	Deliveries    int
}

// Transition reports the lifecycle changes caused by one step.
type Transition struct {
	OverCompleted    bool
	InningsCompleted int
	MatchCompleted   bool
	Reason           string
}

func (t Transition) Changed() bool {
	return t.InningsCompleted > 0 || t.MatchCompleted
}

// State is the live position of a match, derived by replaying its delivery log.
type State struct {
	MatchID            string
	TeamAID            string
	TeamBID            string
	OversLimit         int
	Phase              Phase
	Innings            int
	BattingTeamID      string
	FirstInningsTeamID string
	Inning1Complete    bool
	Over               int
	BallsInOver        int
	StrikerID          string
	NonStrikerID       string
	BowlerID           string
	Sequence           int
	Totals             [2]InningsTotal
	Result             *Result
}

// NewState returns the state of m before any delivery has been bowled.
func NewState(m Match) State {
	first := m.FirstInningsTeamID
	if first == "" {
		first = m.TeamAID
	}
	s := State{
		MatchID:            m.ID,
		TeamAID:            m.TeamAID,
		TeamBID:            m.TeamBID,
		OversLimit:         m.OversLimit,
		Phase:              PhaseAwaitingFirstInnings,
		Innings:            1,
		BattingTeamID:      first,
		FirstInningsTeamID: first,
		Over:               1,
	}
	s.Totals[0].BattingTeamID = first
	return s
}

// Replay folds the delivery log over the initial state of m and then applies the
// explicit completion facts recorded on m. The log must be in sequence order.
func Replay(m Match, log []delivery.Delivery) (State, error) {
	s := NewState(m)
	for _, d := range log {
		if s.Phase == PhaseMatchComplete {
			return State{}, crerr.Wrapf(ErrCorruptLog, "delivery %d recorded after match completion", d.Sequence)
		}
		if d.Innings < s.Innings {
			return State{}, crerr.Wrapf(ErrCorruptLog, "delivery %d belongs to completed innings %d", d.Sequence, d.Innings)
		}
		if d.Innings > s.Innings {
			s.completeInnings(d.BattingTeamID)
		}
		s.advance(d)
	}

	if m.Inning1Complete && s.Innings == 1 {
		s.completeInnings(m.BattingTeamID)
	}
	if m.Status == StatusCompleted && s.Phase != PhaseMatchComplete {
		s.completeMatch()
	}
	return s, nil
}

// Next returns the expected (over, ball) pointer of the next delivery.
// Wides and no-balls share the pointer of the legal ball that follows them.
func (s State) Next() (int, int) {
	return s.Over, s.BallsInOver + 1
}

func (s State) Current() InningsTotal {
	return s.Totals[s.Innings-1]
}

// Target is the score the side batting second must reach, or 0 during innings 1.
func (s State) Target() int {
	if !s.Inning1Complete {
		return 0
	}
	return s.Totals[0].Runs + 1
}

// RemainingBalls is the number of legal balls left in the current innings.
func (s State) RemainingBalls() int {
	return max(s.OversLimit*delivery.BallsPerOver-s.Current().LegalBalls, 0)
}

// RequiredRunRate is runs needed per six balls in the chase, 0 outside of it.
func (s State) RequiredRunRate() float64 {
	if s.Innings != 2 || s.Phase == PhaseMatchComplete {
		return 0
	}
	need := s.Target() - s.Totals[1].Runs
	balls := s.RemainingBalls()
	if need <= 0 || balls == 0 {
		return 0
	}
	return float64(need) * float64(delivery.BallsPerOver) / float64(balls)
}

// Prepare validates d against the current pointer and fills in the fields owned
// by the state machine (innings, batting team, sequence, missing pointer and batters).
func (s State) Prepare(d delivery.Delivery) (delivery.Delivery, error) {
	if s.Phase == PhaseMatchComplete {
		return delivery.Delivery{}, crerr.Wrapf(ErrMatchCompleted, "match %s", s.MatchID)
	}

	over, ball := s.Next()
	if d.Over == 0 && d.Ball == 0 {
		d.Over, d.Ball = over, ball
	}
	if d.Over != over || d.Ball != ball {
		direction := "skips ahead of"
		if d.Over < over || (d.Over == over && d.Ball < ball) {
			direction = "regresses below"
		}
		return delivery.Delivery{}, crerr.Wrapf(ErrOutOfOrder, "ball %s %s expected %s",
			delivery.PositionLabel(d.Over, d.Ball), direction, delivery.PositionLabel(over, ball))
	}

	if d.StrikerID == "" {
		d.StrikerID = s.StrikerID
	}
	if d.NonStrikerID == "" && d.StrikerID != s.NonStrikerID {
		d.NonStrikerID = s.NonStrikerID
	}
	if d.StrikerID != "" && d.StrikerID == d.NonStrikerID {
		return delivery.Delivery{}, crerr.Wrapf(delivery.ErrInvalidDelivery, "striker and non-striker must differ: %s", d.StrikerID)
	}

	d.MatchID = s.MatchID
	d.Innings = s.Innings
	d.BattingTeamID = s.BattingTeamID
	d.Sequence = s.Sequence + 1
	return d, nil
}

// Submit prepares d and advances the state with it.
func (s *State) Submit(d delivery.Delivery) (delivery.Delivery, Transition, error) {
	prepared, err := s.Prepare(d)
	if err != nil {
		return delivery.Delivery{}, Transition{}, err
	}
	return prepared, s.advance(prepared), nil
}

// CompleteInnings ends the current innings on request. Completing an innings that
// already ended is a no-op; ending innings 2 completes the match.
func (s *State) CompleteInnings(nextBattingTeamID string) (Transition, error) {
	switch {
	case s.Phase == PhaseMatchComplete, s.Phase == PhaseInningsComplete:
		return Transition{}, nil
	case s.Innings == 2:
		s.completeMatch()
		return Transition{InningsCompleted: 2, MatchCompleted: true, Reason: "innings closed"}, nil
	}

	other := s.otherTeam(s.BattingTeamID)
	if nextBattingTeamID == "" {
		nextBattingTeamID = other
	}
	if nextBattingTeamID != other {
		return Transition{}, crerr.Wrapf(ErrInvalidTransition,
			"team %s cannot bat in the second innings", nextBattingTeamID)
	}

	s.completeInnings(nextBattingTeamID)
	return Transition{InningsCompleted: 1, Reason: "innings closed"}, nil
}

// CompleteMatch computes the result. Completing a completed match is a no-op.
func (s *State) CompleteMatch() Transition {
	if s.Phase == PhaseMatchComplete {
		return Transition{}
	}
	s.completeMatch()
	return Transition{InningsCompleted: s.Innings, MatchCompleted: true, Reason: "match closed"}
}

// Project writes the state onto the stored match row. The result text and
// completion time are only set when the match completes in this step.
func (s State) Project(m Match, now time.Time, resultText string) Match {
	m.CurrentInnings = s.Innings
	m.BattingTeamID = s.BattingTeamID
	m.FirstInningsTeamID = s.FirstInningsTeamID
	m.Inning1Complete = s.Inning1Complete

	switch s.Phase {
	case PhaseAwaitingFirstInnings:
		m.Status = StatusScheduled
	case PhaseInningsInProgress, PhaseInningsComplete:
		m.Status = StatusLive
	case PhaseMatchComplete:
		if m.Status != StatusCompleted {
			completedAt := now
			m.CompletedAt = &completedAt
			m.ResultText = resultText
		}
		m.Status = StatusCompleted
		if s.Result != nil {
			m.WinnerTeamID = s.Result.WinnerTeamID
			m.Tied = s.Result.Tie
		}
	}
	m.UpdatedAt = now
	return m
}

func (s *State) advance(d delivery.Delivery) Transition {
	var tr Transition
	if s.Phase == PhaseAwaitingFirstInnings || s.Phase == PhaseInningsComplete {
		s.Phase = PhaseInningsInProgress
	}

	total := &s.Totals[s.Innings-1]
	total.Runs += d.TotalRuns()
	total.Deliveries++
	if d.IsWicket {
		total.Wickets++
	}
	s.Sequence = d.Sequence
	s.BowlerID = d.BowlerID

	striker, nonStriker := d.StrikerID, d.NonStrikerID
	if d.IsLegal() {
		total.LegalBalls++
		s.BallsInOver++
		swap := d.RunsRun()%2 == 1
		if s.BallsInOver == delivery.BallsPerOver {
			s.Over++
			s.BallsInOver = 0
			swap = !swap
			tr.OverCompleted = true
		}
		if swap {
			striker, nonStriker = nonStriker, striker
		}
	}
	s.StrikerID, s.NonStrikerID = striker, nonStriker

	limit := s.OversLimit * delivery.BallsPerOver
	var reason string
	switch {
	case s.Innings == 2 && total.Runs > s.Totals[0].Runs:
		reason = "target reached"
	case total.Wickets >= MaxWickets:
		reason = "all out"
	case limit > 0 && total.LegalBalls >= limit:
		reason = "overs complete"
	default:
		return tr
	}

	tr.Reason = reason
	tr.InningsCompleted = s.Innings
	if s.Innings == 1 {
		s.completeInnings(s.otherTeam(s.BattingTeamID))
	} else {
		s.completeMatch()
		tr.MatchCompleted = true
	}
	return tr
}

func (s *State) completeInnings(nextBattingTeamID string) {
	if s.Innings != 1 {
		return
	}
	s.FirstInningsTeamID = s.BattingTeamID
	s.Totals[0].BattingTeamID = s.BattingTeamID
	s.Inning1Complete = true
	s.Innings = 2
	s.BattingTeamID = nextBattingTeamID
	s.Totals[1].BattingTeamID = nextBattingTeamID
	s.Over = 1
	s.BallsInOver = 0
	s.StrikerID, s.NonStrikerID, s.BowlerID = "", "", ""
	s.Phase = PhaseInningsComplete
}

func (s *State) completeMatch() {
	first, second := s.Totals[0], s.Totals[1]
	if second.BattingTeamID == "" {
		second.BattingTeamID = s.otherTeam(first.BattingTeamID)
	}

	result := Result{}
	switch {
	case first.Runs > second.Runs:
		result.WinnerTeamID = first.BattingTeamID
		result.Margin = first.Runs - second.Runs
		result.MarginKind = MarginRuns
	case second.Runs > first.Runs:
		result.WinnerTeamID = second.BattingTeamID
		result.Margin = MaxWickets - second.Wickets
		result.MarginKind = MarginWickets
	default:
		result.Tie = true
	}
	s.Result = &result
	s.Phase = PhaseMatchComplete
	s.StrikerID, s.NonStrikerID, s.BowlerID = "", "", ""
}

func (s State) otherTeam(teamID string) string {
	switch teamID {
	case s.TeamAID:
		return s.TeamBID
	case s.TeamBID:
		return s.TeamAID
	default:
		return ""
	}
}
