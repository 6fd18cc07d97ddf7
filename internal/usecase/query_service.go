package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/cricket-scorer/internal/domain/careerstats"
	"github.com/riskibarqy/cricket-scorer/internal/domain/delivery"
	"github.com/riskibarqy/cricket-scorer/internal/domain/match"
	"github.com/riskibarqy/cricket-scorer/internal/domain/player"
	"github.com/riskibarqy/cricket-scorer/internal/domain/stats"
	"github.com/riskibarqy/cricket-scorer/internal/domain/team"
	"github.com/riskibarqy/cricket-scorer/internal/platform/cache"
)

// Names maps team and player ids to display names for one match.
type Names map[string]string

func (n Names) Resolve(id string) string {
	if name, ok := n[id]; ok && name != "" {
		return name
	}
	return id
}

type Scorecard struct {
	Match   match.Match
	Summary stats.Summary
	Names   Names
}

type MatchInsights struct {
	Match    match.Match
	Insights stats.Insights
	Names    Names
}

type PlayerMatchStats struct {
	MatchID string
	Player  player.Player
	Figures stats.PlayerFigures
}

type LiveState struct {
	Match match.Match
	State match.State
	Names Names
}

// QueryService composes read-only views from the delivery log and registries.
type QueryService struct {
	matchRepo    match.Repository
	deliveryRepo delivery.Repository
	playerRepo   player.Repository
	teamRepo     team.Repository
	careerRepo   careerstats.Repository
	summaries    *summarySource
}

func NewQueryService(
	matchRepo match.Repository,
	deliveryRepo delivery.Repository,
	playerRepo player.Repository,
	teamRepo team.Repository,
	careerRepo careerstats.Repository,
	snapshots *cache.Store[stats.Summary],
) *QueryService {
	return &QueryService{
		matchRepo:    matchRepo,
		deliveryRepo: deliveryRepo,
		playerRepo:   playerRepo,
		teamRepo:     teamRepo,
		careerRepo:   careerRepo,
		summaries:    newSummarySource(deliveryRepo, snapshots),
	}
}

func (s *QueryService) GetScorecard(ctx context.Context, matchID string) (Scorecard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.GetScorecard")
	defer span.End()

	m, err := getMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return Scorecard{}, err
	}
	summary, err := s.summaries.Summary(ctx, m)
	if err != nil {
		return Scorecard{}, err
	}
	names, err := s.names(ctx, m)
	if err != nil {
		return Scorecard{}, err
	}

	return Scorecard{Match: m, Summary: summary, Names: names}, nil
}

func (s *QueryService) GetInsights(ctx context.Context, matchID string, topN int) (MatchInsights, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.GetInsights")
	defer span.End()

	m, err := getMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return MatchInsights{}, err
	}
	summary, err := s.summaries.Summary(ctx, m)
	if err != nil {
		return MatchInsights{}, err
	}
	names, err := s.names(ctx, m)
	if err != nil {
		return MatchInsights{}, err
	}

	return MatchInsights{
		Match:    m,
		Insights: stats.BuildInsights(summary, topN, names.Resolve),
		Names:    names,
	}, nil
}

func (s *QueryService) GetPlayerMatchStats(ctx context.Context, matchID, playerID string) (PlayerMatchStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.GetPlayerMatchStats")
	defer span.End()

	m, err := getMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return PlayerMatchStats{}, err
	}
	p, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return PlayerMatchStats{}, err
	}
	if !m.HasTeam(p.TeamID) {
		return PlayerMatchStats{}, fmt.Errorf("%w: player %s is not in match %s", ErrNotFound, p.ID, m.ID)
	}

	summary, err := s.summaries.Summary(ctx, m)
	if err != nil {
		return PlayerMatchStats{}, err
	}
	return PlayerMatchStats{
		MatchID: m.ID,
		Player:  p,
		Figures: summary.Player(p.ID),
	}, nil
}

// GetPlayerCareerStats returns zeroed figures for a known player without a record yet.
func (s *QueryService) GetPlayerCareerStats(ctx context.Context, playerID, format string) (careerstats.CareerStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.GetPlayerCareerStats")
	defer span.End()

	p, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return careerstats.CareerStats{}, err
	}
	format = match.NormalizeFormat(format)

	item, exists, err := s.careerRepo.Get(ctx, p.ID, format)
	if err != nil {
		return careerstats.CareerStats{}, fmt.Errorf("get career stats: %w", err)
	}
	if !exists {
		return careerstats.CareerStats{PlayerID: p.ID, Format: format}, nil
	}
	return item, nil
}

// GetMatchState replays the log into the live pointer, batters, bowler and totals.
func (s *QueryService) GetMatchState(ctx context.Context, matchID string) (LiveState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.GetMatchState")
	defer span.End()

	m, err := getMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return LiveState{}, err
	}
	log, err := s.deliveryRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		return LiveState{}, fmt.Errorf("list deliveries: %w", err)
	}
	state, err := match.Replay(m, log)
	if err != nil {
		return LiveState{}, fmt.Errorf("replay match %s: %w", m.ID, err)
	}
	names, err := s.names(ctx, m)
	if err != nil {
		return LiveState{}, err
	}

	return LiveState{Match: m, State: state, Names: names}, nil
}

func (s *QueryService) getPlayer(ctx context.Context, playerID string) (player.Player, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	return p, nil
}

func (s *QueryService) names(ctx context.Context, m match.Match) (Names, error) {
	names := make(Names)
	for _, teamID := range []string{m.TeamAID, m.TeamBID} {
		t, exists, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return nil, fmt.Errorf("get team: %w", err)
		}
		if exists {
			names[t.ID] = t.DisplayName()
		}

		players, err := s.playerRepo.ListByTeam(ctx, teamID)
		if err != nil {
			return nil, fmt.Errorf("list players by team: %w", err)
		}
		for _, p := range players {
			names[p.ID] = p.Name
		}
	}
	return names, nil
}
