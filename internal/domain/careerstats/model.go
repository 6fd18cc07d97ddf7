package careerstats

import (
	"strconv"
	"time"

	"github.com/riskibarqy/cricket-scorer/internal/domain/delivery"
	"github.com/riskibarqy/cricket-scorer/internal/domain/stats"
)

// CareerStats is the cumulative record of one player in one format.
type CareerStats struct {
	PlayerID       string
	Format         string
	Matches        int
	BattingInnings int
	Runs           int
	Balls          int
	Fours          int
	Sixes          int
	Centuries      int
	HalfCenturies  int
	HighestScore   int
	HighestNotOut  bool
	TimesOut       int
	BowlingInnings int
	LegalBalls     int
	RunsConceded   int
	Wickets        int
	Maidens        int
	BestWickets    int
	BestRuns       int
	UpdatedAt      time.Time
}

// Accumulate adds one match worth of figures.
func (c *CareerStats) Accumulate(f stats.PlayerFigures) {
	if !f.Played() {
		return
	}
	c.Matches++

	for _, b := range f.Batting {
		c.BattingInnings++
		c.Runs += b.Runs
		c.Balls += b.Balls
		c.Fours += b.Fours
		c.Sixes += b.Sixes
		if b.Out {
			c.TimesOut++
		}
		switch {
		case b.Runs >= 100:
			c.Centuries++
		case b.Runs >= 50:
			c.HalfCenturies++
		}
		if b.Runs > c.HighestScore || (b.Runs == c.HighestScore && !b.Out) {
			c.HighestScore = b.Runs
			c.HighestNotOut = !b.Out
		}
	}

	for _, b := range f.Bowling {
		c.BowlingInnings++
		c.LegalBalls += b.LegalBalls
		c.RunsConceded += b.RunsConceded
		c.Wickets += b.Wickets
		c.Maidens += b.Maidens
		best := stats.Bowling{Wickets: c.BestWickets, RunsConceded: c.BestRuns}
		if c.BowlingInnings == 1 || b.Better(best) {
			c.BestWickets = b.Wickets
			c.BestRuns = b.RunsConceded
		}
	}
}

// Average is nil for a player who has never been dismissed.
func (c CareerStats) Average() *float64 {
	return stats.Average(c.Runs, c.TimesOut)
}

func (c CareerStats) StrikeRate() float64 {
	return stats.StrikeRate(c.Runs, c.Balls)
}

func (c CareerStats) Economy() float64 {
	return stats.Economy(c.RunsConceded, c.LegalBalls)
}

// BowlingAverage is nil until the player has taken a wicket.
func (c CareerStats) BowlingAverage() *float64 {
	return stats.Average(c.RunsConceded, c.Wickets)
}

func (c CareerStats) OversBowled() string {
	return delivery.OversLabel(c.LegalBalls)
}

func (c CareerStats) BestBowling() string {
	if c.BowlingInnings == 0 {
		return ""
	}
	return strconv.Itoa(c.BestWickets) + "/" + strconv.Itoa(c.BestRuns)
}

func (c CareerStats) HighestScoreLabel() string {
	label := strconv.Itoa(c.HighestScore)
	if c.HighestNotOut {
		label += "*"
	}
	return label
}
