package httpapi

import (
	"time"

	"github.com/riskibarqy/cricket-scorer/internal/domain/careerstats"
	"github.com/riskibarqy/cricket-scorer/internal/domain/delivery"
	"github.com/riskibarqy/cricket-scorer/internal/domain/match"
	"github.com/riskibarqy/cricket-scorer/internal/domain/player"
	"github.com/riskibarqy/cricket-scorer/internal/domain/stats"
	"github.com/riskibarqy/cricket-scorer/internal/domain/team"
	"github.com/riskibarqy/cricket-scorer/internal/usecase"
)

type teamDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Short string `json:"short,omitempty"`
}

type playerDTO struct {
	ID          string `json:"id"`
	TeamID      string `json:"teamId"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	BattingHand string `json:"battingHand,omitempty"`
	BowlingArm  string `json:"bowlingArm,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

type matchDTO struct {
	ID                 string     `json:"id"`
	TeamAID            string     `json:"teamAId"`
	TeamBID            string     `json:"teamBId"`
	Venue              string     `json:"venue,omitempty"`
	Format             string     `json:"format"`
	ScheduledAt        time.Time  `json:"scheduledAt"`
	OversLimit         int        `json:"oversLimit"`
	CurrentInnings     int        `json:"currentInnings"`
	BattingTeamID      string     `json:"battingTeamId"`
	FirstInningsTeamID string     `json:"firstInningsTeamId"`
	Inning1Complete    bool       `json:"inning1Complete"`
	Status             string     `json:"status"`
	WinnerTeamID       string     `json:"winnerTeamId,omitempty"`
	Tied               bool       `json:"tied"`
	Result             string     `json:"result,omitempty"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	Version            int64      `json:"version"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

type deliveryDTO struct {
	ID            string `json:"id"`
	Sequence      int    `json:"sequence"`
	Innings       int    `json:"innings"`
	Over          int    `json:"over"`
	Ball          int    `json:"ball"`
	Label         string `json:"label"`
	Category      string `json:"category"`
	RunsScored    int    `json:"runsScored"`
	BatterRuns    int    `json:"batterRuns"`
	ExtrasRuns    int    `json:"extrasRuns"`
	IsWicket      bool   `json:"isWicket"`
	Dismissal     string `json:"dismissal,omitempty"`
	StrikerID     string `json:"strikerId,omitempty"`
	NonStrikerID  string `json:"nonStrikerId,omitempty"`
	BowlerID      string `json:"bowlerId"`
	BattingTeamID string `json:"battingTeamId"`
	Commentary    string `json:"commentary,omitempty"`
}

type submitDeliveryResponse struct {
	Delivery         deliveryDTO `json:"delivery"`
	Match            matchDTO    `json:"match"`
	OverCompleted    bool        `json:"overCompleted"`
	InningsCompleted int         `json:"inningsCompleted,omitempty"`
	MatchCompleted   bool        `json:"matchCompleted"`
	Reason           string      `json:"reason,omitempty"`
}

type battingDTO struct {
	PlayerID   string  `json:"playerId"`
	Name       string  `json:"name"`
	Position   int     `json:"position"`
	Runs       int     `json:"runs"`
	Balls      int     `json:"balls"`
	Fours      int     `json:"fours"`
	Sixes      int     `json:"sixes"`
	StrikeRate float64 `json:"strikeRate"`
	Out        bool    `json:"out"`
	Dismissal  string  `json:"dismissal,omitempty"`
}

type bowlingDTO struct {
	PlayerID     string  `json:"playerId"`
	Name         string  `json:"name"`
	Overs        string  `json:"overs"`
	LegalBalls   int     `json:"legalBalls"`
	Maidens      int     `json:"maidens"`
	RunsConceded int     `json:"runsConceded"`
	Wickets      int     `json:"wickets"`
	Economy      float64 `json:"economy"`
	Dots         int     `json:"dots"`
	Wides        int     `json:"wides"`
	NoBalls      int     `json:"noBalls"`
	Figures      string  `json:"figures"`
}

type extrasDTO struct {
	Wides   int `json:"wides"`
	NoBalls int `json:"noBalls"`
	Byes    int `json:"byes"`
	LegByes int `json:"legByes"`
	Total   int `json:"total"`
}

type fallOfWicketDTO struct {
	Wicket   int    `json:"wicket"`
	Runs     int    `json:"runs"`
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Overs    string `json:"overs"`
}

type inningsDTO struct {
	Number        int               `json:"number"`
	BattingTeamID string            `json:"battingTeamId"`
	BattingTeam   string            `json:"battingTeam"`
	Score         string            `json:"score"`
	Runs          int               `json:"runs"`
	Wickets       int               `json:"wickets"`
	Overs         string            `json:"overs"`
	RunRate       float64           `json:"runRate"`
	Extras        extrasDTO         `json:"extras"`
	Batting       []battingDTO      `json:"batting"`
	Bowling       []bowlingDTO      `json:"bowling"`
	FallOfWickets []fallOfWicketDTO `json:"fallOfWickets"`
}

type scorecardDTO struct {
	Match    matchDTO     `json:"match"`
	Sequence int          `json:"sequence"`
	Innings  []inningsDTO `json:"innings"`
}

type ballDTO struct {
	Sequence   int    `json:"sequence"`
	Innings    int    `json:"innings"`
	Label      string `json:"label"`
	Category   string `json:"category"`
	Runs       int    `json:"runs"`
	IsWicket   bool   `json:"isWicket"`
	Outcome    string `json:"outcome"`
	Striker    string `json:"striker,omitempty"`
	Bowler     string `json:"bowler"`
	Commentary string `json:"commentary,omitempty"`
}

type teamTotalDTO struct {
	Innings       int     `json:"innings"`
	TeamID        string  `json:"teamId"`
	Team          string  `json:"team"`
	Runs          int     `json:"runs"`
	Wickets       int     `json:"wickets"`
	Overs         string  `json:"overs"`
	RunRate       float64 `json:"runRate"`
	Extras        int     `json:"extras"`
	BoundaryCount int     `json:"boundaryCount"`
}

type insightsDTO struct {
	MatchID       string         `json:"matchId"`
	Sequence      int            `json:"sequence"`
	TopScorers    []battingDTO   `json:"topScorers"`
	SixHitters    []battingDTO   `json:"sixHitters"`
	LowOrder      []battingDTO   `json:"lowOrderContributions"`
	LowOrderCount int            `json:"lowOrderCount"`
	BestBowlers   []bowlingDTO   `json:"bestBowlers"`
	TeamTotals    []teamTotalDTO `json:"teamTotals"`
	Narrative     []string       `json:"narrative"`
	Timeline      []ballDTO      `json:"timeline"`
}

type playerMatchStatsDTO struct {
	MatchID string       `json:"matchId"`
	Player  playerDTO    `json:"player"`
	Played  bool         `json:"played"`
	Batting battingDTO   `json:"batting"`
	Bowling bowlingDTO   `json:"bowling"`
	Innings []battingDTO `json:"battingInnings"`
	Spells  []bowlingDTO `json:"bowlingInnings"`
	Average *float64     `json:"battingAverage"`
}

type careerStatsDTO struct {
	PlayerID       string    `json:"playerId"`
	Format         string    `json:"format"`
	Matches        int       `json:"matches"`
	BattingInnings int       `json:"battingInnings"`
	Runs           int       `json:"runs"`
	Balls          int       `json:"balls"`
	Fours          int       `json:"fours"`
	Sixes          int       `json:"sixes"`
	Centuries      int       `json:"centuries"`
	HalfCenturies  int       `json:"halfCenturies"`
	HighestScore   string    `json:"highestScore"`
	TimesOut       int       `json:"timesOut"`
	Average        *float64  `json:"battingAverage"`
	StrikeRate     float64   `json:"strikeRate"`
	BowlingInnings int       `json:"bowlingInnings"`
	Overs          string    `json:"overs"`
	RunsConceded   int       `json:"runsConceded"`
	Wickets        int       `json:"wickets"`
	Maidens        int       `json:"maidens"`
	BestBowling    string    `json:"bestBowling,omitempty"`
	Economy        float64   `json:"economy"`
	BowlingAverage *float64  `json:"bowlingAverage"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type liveStateDTO struct {
	Match           matchDTO       `json:"match"`
	Phase           string         `json:"phase"`
	Innings         int            `json:"innings"`
	BattingTeamID   string         `json:"battingTeamId"`
	NextBall        string         `json:"nextBall"`
	NextOver        int            `json:"nextOver"`
	NextBallInOver  int            `json:"nextBallInOver"`
	StrikerID       string         `json:"strikerId,omitempty"`
	Striker         string         `json:"striker,omitempty"`
	NonStrikerID    string         `json:"nonStrikerId,omitempty"`
	NonStriker      string         `json:"nonStriker,omitempty"`
	BowlerID        string         `json:"bowlerId,omitempty"`
	Bowler          string         `json:"bowler,omitempty"`
	Sequence        int            `json:"sequence"`
	Totals          []teamTotalDTO `json:"totals"`
	Target          int            `json:"target,omitempty"`
	RemainingBalls  int            `json:"remainingBalls"`
	RequiredRunRate float64        `json:"requiredRunRate"`
}

type rebuildDTO struct {
	Matches    int   `json:"matches"`
	Applied    int   `json:"applied"`
	DurationMs int64 `json:"durationMs"`
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{ID: t.ID, Name: t.Name, Short: t.Short}
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:          p.ID,
		TeamID:      p.TeamID,
		Name:        p.Name,
		Role:        string(p.Role),
		BattingHand: p.BattingHand,
		BowlingArm:  p.BowlingArm,
		ImageURL:    p.ImageURL,
	}
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:                 m.ID,
		TeamAID:            m.TeamAID,
		TeamBID:            m.TeamBID,
		Venue:              m.Venue,
		Format:             m.Format,
		ScheduledAt:        m.ScheduledAt,
		OversLimit:         m.OversLimit,
		CurrentInnings:     m.CurrentInnings,
		BattingTeamID:      m.BattingTeamID,
		FirstInningsTeamID: m.FirstInningsTeamID,
		Inning1Complete:    m.Inning1Complete,
		Status:             string(m.Status),
		WinnerTeamID:       m.WinnerTeamID,
		Tied:               m.Tied,
		Result:             m.ResultText,
		CompletedAt:        m.CompletedAt,
		Version:            m.Version,
		UpdatedAt:          m.UpdatedAt,
	}
}

func deliveryToDTO(d delivery.Delivery) deliveryDTO {
	return deliveryDTO{
		ID:            d.ID,
		Sequence:      d.Sequence,
		Innings:       d.Innings,
		Over:          d.Over,
		Ball:          d.Ball,
		Label:         d.Label(),
		Category:      string(d.Category),
		RunsScored:    d.RunsScored,
		BatterRuns:    d.BatterRuns,
		ExtrasRuns:    d.ExtrasRuns,
		IsWicket:      d.IsWicket,
		Dismissal:     d.Dismissal,
		StrikerID:     d.StrikerID,
		NonStrikerID:  d.NonStrikerID,
		BowlerID:      d.BowlerID,
		BattingTeamID: d.BattingTeamID,
		Commentary:    d.Commentary,
	}
}

func battingToDTO(b stats.Batting, names usecase.Names) battingDTO {
	return battingDTO{
		PlayerID:   b.PlayerID,
		Name:       names.Resolve(b.PlayerID),
		Position:   b.Position,
		Runs:       b.Runs,
		Balls:      b.Balls,
		Fours:      b.Fours,
		Sixes:      b.Sixes,
		StrikeRate: stats.Round2(b.StrikeRate()),
		Out:        b.Out,
		Dismissal:  b.Dismissal,
	}
}

func bowlingToDTO(b stats.Bowling, names usecase.Names) bowlingDTO {
	return bowlingDTO{
		PlayerID:     b.PlayerID,
		Name:         names.Resolve(b.PlayerID),
		Overs:        b.Overs(),
		LegalBalls:   b.LegalBalls,
		Maidens:      b.Maidens,
		RunsConceded: b.RunsConceded,
		Wickets:      b.Wickets,
		Economy:      stats.Round2(b.Economy()),
		Dots:         b.Dots,
		Wides:        b.Wides,
		NoBalls:      b.NoBalls,
		Figures:      b.Figures(),
	}
}

func battingListToDTO(items []stats.Batting, names usecase.Names) []battingDTO {
	out := make([]battingDTO, 0, len(items))
	for _, b := range items {
		out = append(out, battingToDTO(b, names))
	}
	return out
}

func bowlingListToDTO(items []stats.Bowling, names usecase.Names) []bowlingDTO {
	out := make([]bowlingDTO, 0, len(items))
	for _, b := range items {
		out = append(out, bowlingToDTO(b, names))
	}
	return out
}

func scorecardToDTO(card usecase.Scorecard) scorecardDTO {
	out := scorecardDTO{
		Match:    matchToDTO(card.Match),
		Sequence: card.Summary.Sequence,
		Innings:  make([]inningsDTO, 0, len(card.Summary.Innings)),
	}
	for _, inn := range card.Summary.Innings {
		fow := make([]fallOfWicketDTO, 0, len(inn.FallOfWickets))
		for _, f := range inn.FallOfWickets {
			fow = append(fow, fallOfWicketDTO{
				Wicket:   f.Wicket,
				Runs:     f.Runs,
				PlayerID: f.PlayerID,
				Name:     card.Names.Resolve(f.PlayerID),
				Overs:    f.Overs,
			})
		}
		out.Innings = append(out.Innings, inningsDTO{
			Number:        inn.Number,
			BattingTeamID: inn.BattingTeamID,
			BattingTeam:   card.Names.Resolve(inn.BattingTeamID),
			Score:         inn.Score(),
			Runs:          inn.Runs,
			Wickets:       inn.Wickets,
			Overs:         inn.Overs(),
			RunRate:       stats.Round2(inn.RunRate()),
			Extras: extrasDTO{
				Wides:   inn.Extras.Wides,
				NoBalls: inn.Extras.NoBalls,
				Byes:    inn.Extras.Byes,
				LegByes: inn.Extras.LegByes,
				Total:   inn.Extras.Total(),
			},
			Batting:       battingListToDTO(inn.Batting, card.Names),
			Bowling:       bowlingListToDTO(inn.Bowling, card.Names),
			FallOfWickets: fow,
		})
	}
	return out
}

func teamTotalToDTO(t stats.TeamTotal, names usecase.Names) teamTotalDTO {
	return teamTotalDTO{
		Innings:       t.Innings,
		TeamID:        t.TeamID,
		Team:          names.Resolve(t.TeamID),
		Runs:          t.Runs,
		Wickets:       t.Wickets,
		Overs:         t.Overs,
		RunRate:       stats.Round2(t.RunRate),
		Extras:        t.ExtrasTotal,
		BoundaryCount: t.BoundaryCount,
	}
}

func insightsToDTO(in usecase.MatchInsights) insightsDTO {
	totals := make([]teamTotalDTO, 0, len(in.Insights.TeamTotals))
	for _, t := range in.Insights.TeamTotals {
		totals = append(totals, teamTotalToDTO(t, in.Names))
	}
	timeline := make([]ballDTO, 0, len(in.Insights.Timeline))
	for _, b := range in.Insights.Timeline {
		timeline = append(timeline, ballDTO{
			Sequence:   b.Sequence,
			Innings:    b.Innings,
			Label:      b.Label,
			Category:   string(b.Category),
			Runs:       b.Runs,
			IsWicket:   b.IsWicket,
			Outcome:    b.Outcome,
			Striker:    resolveOptional(in.Names, b.StrikerID),
			Bowler:     in.Names.Resolve(b.BowlerID),
			Commentary: b.Commentary,
		})
	}
	narrative := in.Insights.Narrative
	if narrative == nil {
		narrative = []string{}
	}

	return insightsDTO{
		MatchID:       in.Insights.MatchID,
		Sequence:      in.Insights.Sequence,
		TopScorers:    battingListToDTO(in.Insights.TopScorers, in.Names),
		SixHitters:    battingListToDTO(in.Insights.SixHitters, in.Names),
		LowOrder:      battingListToDTO(in.Insights.LowOrder, in.Names),
		LowOrderCount: in.Insights.LowOrderCount,
		BestBowlers:   bowlingListToDTO(in.Insights.BestBowlers, in.Names),
		TeamTotals:    totals,
		Narrative:     narrative,
		Timeline:      timeline,
	}
}

func playerMatchStatsToDTO(item usecase.PlayerMatchStats) playerMatchStatsDTO {
	names := usecase.Names{item.Player.ID: item.Player.Name}
	batting := item.Figures.BattingTotals()
	dismissals := 0
	for _, b := range item.Figures.Batting {
		if b.Out {
			dismissals++
		}
	}

	return playerMatchStatsDTO{
		MatchID: item.MatchID,
		Player:  playerToDTO(item.Player),
		Played:  item.Figures.Played(),
		Batting: battingToDTO(batting, names),
		Bowling: bowlingToDTO(item.Figures.BowlingTotals(), names),
		Innings: battingListToDTO(item.Figures.Batting, names),
		Spells:  bowlingListToDTO(item.Figures.Bowling, names),
		Average: stats.RoundPtr(stats.Average(batting.Runs, dismissals)),
	}
}

func careerToDTO(c careerstats.CareerStats) careerStatsDTO {
	return careerStatsDTO{
		PlayerID:       c.PlayerID,
		Format:         c.Format,
		Matches:        c.Matches,
		BattingInnings: c.BattingInnings,
		Runs:           c.Runs,
		Balls:          c.Balls,
		Fours:          c.Fours,
		Sixes:          c.Sixes,
		Centuries:      c.Centuries,
		HalfCenturies:  c.HalfCenturies,
		HighestScore:   c.HighestScoreLabel(),
		TimesOut:       c.TimesOut,
		Average:        stats.RoundPtr(c.Average()),
		StrikeRate:     stats.Round2(c.StrikeRate()),
		BowlingInnings: c.BowlingInnings,
		Overs:          c.OversBowled(),
		RunsConceded:   c.RunsConceded,
		Wickets:        c.Wickets,
		Maidens:        c.Maidens,
		BestBowling:    c.BestBowling(),
		Economy:        stats.Round2(c.Economy()),
		BowlingAverage: stats.RoundPtr(c.BowlingAverage()),
		UpdatedAt:      c.UpdatedAt,
	}
}

func liveStateToDTO(live usecase.LiveState) liveStateDTO {
	s := live.State
	over, ball := s.Next()
	totals := make([]teamTotalDTO, 0, s.Innings)
	for i := 0; i < s.Innings && i < len(s.Totals); i++ {
		t := s.Totals[i]
		totals = append(totals, teamTotalToDTO(stats.TeamTotal{
			Innings: i + 1,
			TeamID:  t.BattingTeamID,
			Runs:    t.Runs,
			Wickets: t.Wickets,
			Overs:   delivery.OversLabel(t.LegalBalls),
			RunRate: stats.RunRate(t.Runs, t.LegalBalls),
		}, live.Names))
	}

	return liveStateDTO{
		Match:           matchToDTO(live.Match),
		Phase:           string(s.Phase),
		Innings:         s.Innings,
		BattingTeamID:   s.BattingTeamID,
		NextBall:        delivery.PositionLabel(over, ball),
		NextOver:        over,
		NextBallInOver:  ball,
		StrikerID:       s.StrikerID,
		Striker:         resolveOptional(live.Names, s.StrikerID),
		NonStrikerID:    s.NonStrikerID,
		NonStriker:      resolveOptional(live.Names, s.NonStrikerID),
		BowlerID:        s.BowlerID,
		Bowler:          resolveOptional(live.Names, s.BowlerID),
		Sequence:        s.Sequence,
		Totals:          totals,
		Target:          s.Target(),
		RemainingBalls:  s.RemainingBalls(),
		RequiredRunRate: stats.Round2(s.RequiredRunRate()),
	}
}

func resolveOptional(names usecase.Names, id string) string {
	if id == "" {
		return ""
	}
	return names.Resolve(id)
}
