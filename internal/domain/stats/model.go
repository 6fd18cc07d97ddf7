package stats

import (
	"strconv"

	"github.com/riskibarqy/cricket-scorer/internal/domain/delivery"
)

// Batting is one player's batting line in one innings.
type Batting struct {
	PlayerID  string
	TeamID    string
	Innings   int
	Position  int
	Runs      int
	Balls     int
	Fours     int
	Sixes     int
	Out       bool
	Dismissal string
	BowlerID  string
}

func (b Batting) StrikeRate() float64 {
	return StrikeRate(b.Runs, b.Balls)
}

// Bowling is one player's bowling line in one innings.
type Bowling struct {
	PlayerID     string
	Innings      int
	LegalBalls   int
	RunsConceded int
	Wickets      int
	Maidens      int
	Dots         int
	Wides        int
	NoBalls      int

	currentOver      int
	currentOverRuns  int
	currentOverBalls int
}

func (b Bowling) Economy() float64 {
	return Economy(b.RunsConceded, b.LegalBalls)
}

func (b Bowling) Overs() string {
	return delivery.OversLabel(b.LegalBalls)
}

// Figures renders wickets/runs, e.g. "3/24".
func (b Bowling) Figures() string {
	return strconv.Itoa(b.Wickets) + "/" + strconv.Itoa(b.RunsConceded)
}

// Better reports whether b is a better bowling return than other.
func (b Bowling) Better(other Bowling) bool {
	if b.Wickets != other.Wickets {
		return b.Wickets > other.Wickets
	}
	return b.RunsConceded < other.RunsConceded
}

type Extras struct {
	Wides   int
	NoBalls int
	Byes    int
	LegByes int
}

func (e Extras) Total() int {
	return e.Wides + e.NoBalls + e.Byes + e.LegByes
}

type FallOfWicket struct {
	Wicket   int
	Runs     int
	PlayerID string
	Overs    string
}

// Ball is one timeline entry.
type Ball struct {
	Sequence   int
	Innings    int
	Label      string
	Category   delivery.Category
	Runs       int
	IsWicket   bool
	Outcome    string
	StrikerID  string
	BowlerID   string
	Commentary string
}

// InningsSummary is an immutable view of one innings.
type InningsSummary struct {
	Number        int
	BattingTeamID string
	Runs          int
	Wickets       int
	LegalBalls    int
	Deliveries    int
	Extras        Extras
	Batting       []Batting
	Bowling       []Bowling
	FallOfWickets []FallOfWicket
}

func (i InningsSummary) Overs() string {
	return delivery.OversLabel(i.LegalBalls)
}

func (i InningsSummary) RunRate() float64 {
	return RunRate(i.Runs, i.LegalBalls)
}

// Score renders runs/wickets, e.g. "142/6".
func (i InningsSummary) Score() string {
	return strconv.Itoa(i.Runs) + "/" + strconv.Itoa(i.Wickets)
}

// Summary is the aggregated state of a match after Sequence deliveries.
type Summary struct {
	MatchID  string
	Sequence int
	Innings  []InningsSummary
	Timeline []Ball
}

// PlayerFigures is everything one player did in one match.
type PlayerFigures struct {
	PlayerID string
	Batting  []Batting
	Bowling  []Bowling
}

func (p PlayerFigures) Played() bool {
	return len(p.Batting) > 0 || len(p.Bowling) > 0
}

// BattingTotals sums the batting lines across innings.
func (p PlayerFigures) BattingTotals() Batting {
	out := Batting{PlayerID: p.PlayerID}
	for _, b := range p.Batting {
		out.TeamID = b.TeamID
		out.Runs += b.Runs
		out.Balls += b.Balls
		out.Fours += b.Fours
		out.Sixes += b.Sixes
		if b.Out {
			out.Out = true
			out.Dismissal = b.Dismissal
			out.BowlerID = b.BowlerID
		}
		if out.Position == 0 || (b.Position > 0 && b.Position < out.Position) {
			out.Position = b.Position
		}
	}
	return out
}

// BowlingTotals sums the bowling lines across innings.
func (p PlayerFigures) BowlingTotals() Bowling {
	out := Bowling{PlayerID: p.PlayerID}
	for _, b := range p.Bowling {
		out.LegalBalls += b.LegalBalls
		out.RunsConceded += b.RunsConceded
		out.Wickets += b.Wickets
		out.Maidens += b.Maidens
		out.Dots += b.Dots
		out.Wides += b.Wides
		out.NoBalls += b.NoBalls
	}
	return out
}

// Player collects the figures of playerID from every innings.
func (s Summary) Player(playerID string) PlayerFigures {
	out := PlayerFigures{PlayerID: playerID}
	for _, inn := range s.Innings {
		for _, b := range inn.Batting {
			if b.PlayerID == playerID {
				out.Batting = append(out.Batting, b)
			}
		}
		for _, b := range inn.Bowling {
			if b.PlayerID == playerID {
				out.Bowling = append(out.Bowling, b)
			}
		}
	}
	return out
}

// PlayerIDs lists every player who batted or bowled, in first appearance order.
func (s Summary) PlayerIDs() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	add := func(id string) {
		if _, ok := seen[id]; ok || id == "" {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, inn := range s.Innings {
		for _, b := range inn.Batting {
			add(b.PlayerID)
		}
		for _, b := range inn.Bowling {
			add(b.PlayerID)
		}
	}
	return out
}
