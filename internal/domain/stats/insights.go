package stats

import (
	"sort"
	"strconv"

	"github.com/valyala/bytebufferpool"
)

const (
	LowOrderPosition = 4
	LowOrderRuns     = 30
	DefaultTopN      = 5
)

// NameFunc resolves a player or team id to a display name.
type NameFunc func(id string) string

type TeamTotal struct {
	Innings       int
	TeamID        string
	Runs          int
	Wickets       int
	Overs         string
	RunRate       float64
	ExtrasTotal   int
	BoundaryCount int
}

// Insights are the highlight views of a match.
type Insights struct {
	MatchID       string
	Sequence      int
	TopScorers    []Batting
	SixHitters    []Batting
	LowOrder      []Batting
	BestBowlers   []Bowling
	TeamTotals    []TeamTotal
	Narrative     []string
	Timeline      []Ball
	LowOrderCount int
}

// BuildInsights ranks performers and renders narrative lines from a summary.
func BuildInsights(s Summary, topN int, names NameFunc) Insights {
	if topN <= 0 {
		topN = DefaultTopN
	}
	if names == nil {
		names = func(id string) string { return id }
	}

	batters := make([]Batting, 0)
	bowlers := make([]Bowling, 0)
	for _, id := range s.PlayerIDs() {
		figures := s.Player(id)
		if len(figures.Batting) > 0 {
			batters = append(batters, figures.BattingTotals())
		}
		if len(figures.Bowling) > 0 {
			bowlers = append(bowlers, figures.BowlingTotals())
		}
	}

	out := Insights{
		MatchID:  s.MatchID,
		Sequence: s.Sequence,
		Timeline: s.Timeline,
	}

	out.TopScorers = TopScorers(batters, topN)
	out.SixHitters = SixHitters(batters, topN)
	for _, inn := range s.Innings {
		for _, b := range inn.Batting {
			if b.Position >= LowOrderPosition && b.Runs >= LowOrderRuns {
				out.LowOrder = append(out.LowOrder, b)
			}
		}
	}
	out.LowOrderCount = len(out.LowOrder)

	sort.SliceStable(bowlers, func(i, j int) bool {
		if bowlers[i].Wickets != bowlers[j].Wickets || bowlers[i].RunsConceded != bowlers[j].RunsConceded {
			return bowlers[i].Better(bowlers[j])
		}
		return bowlers[i].PlayerID < bowlers[j].PlayerID
	})
	out.BestBowlers = firstN(bowlers, topN)

	for _, inn := range s.Innings {
		boundaries := 0
		for _, b := range inn.Batting {
			boundaries += b.Fours + b.Sixes
		}
		out.TeamTotals = append(out.TeamTotals, TeamTotal{
			Innings:       inn.Number,
			TeamID:        inn.BattingTeamID,
			Runs:          inn.Runs,
			Wickets:       inn.Wickets,
			Overs:         inn.Overs(),
			RunRate:       inn.RunRate(),
			ExtrasTotal:   inn.Extras.Total(),
			BoundaryCount: boundaries,
		})
	}

	out.Narrative = narrative(out, names)
	return out
}

// TopScorers ranks by runs, then strike rate, then player id.
func TopScorers(batters []Batting, topN int) []Batting {
	ranked := append([]Batting(nil), batters...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Runs != ranked[j].Runs {
			return ranked[i].Runs > ranked[j].Runs
		}
		si, sj := ranked[i].StrikeRate(), ranked[j].StrikeRate()
		if si != sj {
			return si > sj
		}
		return ranked[i].PlayerID < ranked[j].PlayerID
	})
	return firstN(ranked, topN)
}

// SixHitters ranks players with at least one six by sixes, then runs.
func SixHitters(batters []Batting, topN int) []Batting {
	ranked := make([]Batting, 0, len(batters))
	for _, b := range batters {
		if b.Sixes > 0 {
			ranked = append(ranked, b)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Sixes != ranked[j].Sixes {
			return ranked[i].Sixes > ranked[j].Sixes
		}
		if ranked[i].Runs != ranked[j].Runs {
			return ranked[i].Runs > ranked[j].Runs
		}
		return ranked[i].PlayerID < ranked[j].PlayerID
	})
	return firstN(ranked, topN)
}

func narrative(in Insights, names NameFunc) []string {
	lines := make([]string, 0, len(in.TeamTotals)+3)
	for _, total := range in.TeamTotals {
		lines = append(lines, line(
			names(total.TeamID), " scored ", strconv.Itoa(total.Runs), "/", strconv.Itoa(total.Wickets),
			" in ", total.Overs, " overs (RR ", strconv.FormatFloat(Round2(total.RunRate), 'f', 2, 64), ")",
		))
	}
	if len(in.TopScorers) > 0 {
		top := in.TopScorers[0]
		notOut := ""
		if !top.Out {
			notOut = "*"
		}
		lines = append(lines, line(
			"Top scorer: ", names(top.PlayerID), " ", strconv.Itoa(top.Runs), notOut,
			" off ", strconv.Itoa(top.Balls), " balls",
		))
	}
	if len(in.BestBowlers) > 0 && in.BestBowlers[0].Wickets > 0 {
		best := in.BestBowlers[0]
		lines = append(lines, line(
			"Best bowling: ", names(best.PlayerID), " ", best.Figures(), " in ", best.Overs(), " overs",
		))
	}
	if len(in.SixHitters) > 0 {
		six := in.SixHitters[0]
		lines = append(lines, line(
			"Most sixes: ", names(six.PlayerID), " with ", strconv.Itoa(six.Sixes),
		))
	}
	if in.LowOrderCount > 0 {
		lines = append(lines, line(
			strconv.Itoa(in.LowOrderCount), " lower-order contribution(s) of ", strconv.Itoa(LowOrderRuns), "+ runs",
		))
	}
	return lines
}

func line(parts ...string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for _, part := range parts {
		_, _ = buf.WriteString(part)
	}
	return buf.String()
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
