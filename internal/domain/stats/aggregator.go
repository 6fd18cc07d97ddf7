package stats

import (
	"strconv"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/cricket-scorer/internal/domain/delivery"
)

var ErrOutOfSequence = crerr.New("delivery applied out of sequence")

type inningsAgg struct {
	number        int
	battingTeamID string
	runs          int
	wickets       int
	legalBalls    int
	deliveries    int
	extras        Extras
	fall          []FallOfWicket

	strikeOrder []string
	seenOrder   []string
	batting     map[string]*Batting
	bowlOrder   []string
	bowling     map[string]*Bowling
}

func newInningsAgg(number int, battingTeamID string) *inningsAgg {
	return &inningsAgg{
		number:        number,
		battingTeamID: battingTeamID,
		batting:       make(map[string]*Batting),
		bowling:       make(map[string]*Bowling),
	}
}

// Aggregator folds a match delivery log into batting, bowling and team figures.
// It is not safe for concurrent use.
type Aggregator struct {
	matchID  string
	sequence int
	innings  []*inningsAgg
	timeline []Ball
}

func NewAggregator(matchID string) *Aggregator {
	return &Aggregator{matchID: matchID}
}

// Recompute folds the whole log from scratch.
func Recompute(matchID string, log []delivery.Delivery) (*Aggregator, error) {
	agg := NewAggregator(matchID)
	for _, d := range log {
		if err := agg.Apply(d); err != nil {
			return nil, err
		}
	}
	return agg, nil
}

// Sequence is the sequence number of the last applied delivery.
func (a *Aggregator) Sequence() int {
	return a.sequence
}

// Apply folds one delivery. Deliveries must arrive in log order.
func (a *Aggregator) Apply(d delivery.Delivery) error {
	if d.Sequence != 0 && d.Sequence <= a.sequence {
		return crerr.Wrapf(ErrOutOfSequence, "delivery %d after %d", d.Sequence, a.sequence)
	}
	if d.Innings <= 0 {
		d.Innings = 1
	}

	inn := a.inningsFor(d.Innings, d.BattingTeamID)
	inn.deliveries++
	inn.runs += d.TotalRuns()
	if d.IsLegal() {
		inn.legalBalls++
	}

	switch d.Category {
	case delivery.CategoryWide:
		inn.extras.Wides += d.ExtrasRuns
	case delivery.CategoryNoBall:
		inn.extras.NoBalls += d.ExtrasRuns
	case delivery.CategoryBye:
		inn.extras.Byes += d.ExtrasRuns
	case delivery.CategoryLegBye:
		inn.extras.LegByes += d.ExtrasRuns
	}

	inn.seeBatter(d.NonStrikerID, d.BattingTeamID, false)
	if bat := inn.seeBatter(d.StrikerID, d.BattingTeamID, true); bat != nil {
		bat.Runs += d.BatterRuns
		if d.Faced() {
			bat.Balls++
		}
		if d.Category == delivery.CategoryLegal {
			switch d.BatterRuns {
			case 4:
				bat.Fours++
			case 6:
				bat.Sixes++
			}
		}
		if d.IsWicket {
			bat.Out = true
			bat.Dismissal = d.Dismissal
			bat.BowlerID = d.BowlerID
		}
	}

	if d.IsWicket {
		inn.wickets++
		inn.fall = append(inn.fall, FallOfWicket{
			Wicket:   inn.wickets,
			Runs:     inn.runs,
			PlayerID: d.StrikerID,
			Overs:    delivery.OversLabel(inn.legalBalls),
		})
	}

	if d.BowlerID != "" {
		bowl := inn.bowler(d.BowlerID)
		if bowl.currentOver != d.Over {
			bowl.currentOver = d.Over
			bowl.currentOverRuns = 0
			bowl.currentOverBalls = 0
		}
		conceded := d.BowlerRuns()
		bowl.RunsConceded += conceded
		bowl.currentOverRuns += conceded
		switch d.Category {
		case delivery.CategoryWide:
			bowl.Wides++
		case delivery.CategoryNoBall:
			bowl.NoBalls++
		}
		if d.IsLegal() {
			bowl.LegalBalls++
			bowl.currentOverBalls++
			if conceded == 0 {
				bowl.Dots++
			}
			if bowl.currentOverBalls == delivery.BallsPerOver && bowl.currentOverRuns == 0 {
				bowl.Maidens++
			}
		}
		if d.IsWicket {
			bowl.Wickets++
		}
	}

	a.timeline = append(a.timeline, Ball{
		Sequence:   d.Sequence,
		Innings:    d.Innings,
		Label:      d.Label(),
		Category:   d.Category,
		Runs:       d.TotalRuns(),
		IsWicket:   d.IsWicket,
		Outcome:    Outcome(d),
		StrikerID:  d.StrikerID,
		BowlerID:   d.BowlerID,
		Commentary: d.Commentary,
	})
	if d.Sequence != 0 {
		a.sequence = d.Sequence
	} else {
		a.sequence++
	}
	return nil
}

// Snapshot copies the current figures into an immutable Summary.
func (a *Aggregator) Snapshot() Summary {
	out := Summary{
		MatchID:  a.matchID,
		Sequence: a.sequence,
		Innings:  make([]InningsSummary, 0, len(a.innings)),
		Timeline: append([]Ball(nil), a.timeline...),
	}
	for _, inn := range a.innings {
		out.Innings = append(out.Innings, inn.summary())
	}
	return out
}

func (a *Aggregator) inningsFor(number int, battingTeamID string) *inningsAgg {
	for _, inn := range a.innings {
		if inn.number == number {
			if inn.battingTeamID == "" {
				inn.battingTeamID = battingTeamID
			}
			return inn
		}
	}
	inn := newInningsAgg(number, battingTeamID)
	a.innings = append(a.innings, inn)
	return inn
}

func (i *inningsAgg) seeBatter(playerID, teamID string, onStrike bool) *Batting {
	if playerID == "" {
		return nil
	}
	bat, ok := i.batting[playerID]
	if !ok {
		bat = &Batting{PlayerID: playerID, TeamID: teamID, Innings: i.number}
		i.batting[playerID] = bat
		i.seenOrder = append(i.seenOrder, playerID)
	}
	if onStrike && bat.Position == 0 {
		i.strikeOrder = append(i.strikeOrder, playerID)
		bat.Position = len(i.strikeOrder)
	}
	return bat
}

func (i *inningsAgg) bowler(playerID string) *Bowling {
	bowl, ok := i.bowling[playerID]
	if !ok {
		bowl = &Bowling{PlayerID: playerID, Innings: i.number}
		i.bowling[playerID] = bowl
		i.bowlOrder = append(i.bowlOrder, playerID)
	}
	return bowl
}

func (i *inningsAgg) summary() InningsSummary {
	out := InningsSummary{
		Number:        i.number,
		BattingTeamID: i.battingTeamID,
		Runs:          i.runs,
		Wickets:       i.wickets,
		LegalBalls:    i.legalBalls,
		Deliveries:    i.deliveries,
		Extras:        i.extras,
		Batting:       make([]Batting, 0, len(i.batting)),
		Bowling:       make([]Bowling, 0, len(i.bowlOrder)),
		FallOfWickets: append([]FallOfWicket(nil), i.fall...),
	}

	for _, id := range i.strikeOrder {
		out.Batting = append(out.Batting, *i.batting[id])
	}
	// Batters who only ever stood at the non-striker's end follow in arrival order.
	next := len(i.strikeOrder)
	for _, id := range i.seenOrder {
		bat := *i.batting[id]
		if bat.Position != 0 {
			continue
		}
		next++
		bat.Position = next
		out.Batting = append(out.Batting, bat)
	}

	for _, id := range i.bowlOrder {
		bowl := *i.bowling[id]
		bowl.currentOver, bowl.currentOverRuns, bowl.currentOverBalls = 0, 0, 0
		out.Bowling = append(out.Bowling, bowl)
	}
	return out
}

// Outcome renders the short scorebook notation of a delivery, e.g. "4", "W", "1wd", "nb+4".
func Outcome(d delivery.Delivery) string {
	var out string
	switch d.Category {
	case delivery.CategoryWide:
		out = strconv.Itoa(d.ExtrasRuns) + "wd"
	case delivery.CategoryNoBall:
		out = "nb"
		if d.BatterRuns > 0 {
			out += "+" + strconv.Itoa(d.BatterRuns)
		}
	case delivery.CategoryBye:
		out = strconv.Itoa(d.ExtrasRuns) + "b"
	case delivery.CategoryLegBye:
		out = strconv.Itoa(d.ExtrasRuns) + "lb"
	default:
		out = strconv.Itoa(d.BatterRuns)
		if d.BatterRuns == 0 {
			out = "."
		}
	}
	if d.IsWicket {
		if d.Category == delivery.CategoryLegal && d.BatterRuns == 0 {
			return "W"
		}
		out += "W"
	}
	return out
}
