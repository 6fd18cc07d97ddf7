package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/cricket-scorer/internal/domain/match"
	"github.com/riskibarqy/cricket-scorer/internal/domain/team"
	idgen "github.com/riskibarqy/cricket-scorer/internal/platform/id"
	"github.com/riskibarqy/cricket-scorer/internal/platform/logging"
)

// CreateMatchInput schedules a match. OversLimit falls back to the configured default.
type CreateMatchInput struct {
	TeamAID            string
	TeamBID            string
	FirstInningsTeamID string
	Venue              string
	Format             string
	ScheduledAt        time.Time
	OversLimit         int
}

type MatchService struct {
	matchRepo    match.Repository
	teamRepo     team.Repository
	idGen        idgen.Generator
	defaultOvers int
	logger       *logging.Logger
	now          func() time.Time
}

func NewMatchService(
	matchRepo match.Repository,
	teamRepo team.Repository,
	idGen idgen.Generator,
	defaultOvers int,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	if defaultOvers <= 0 {
		defaultOvers = 20
	}

	return &MatchService{
		matchRepo:    matchRepo,
		teamRepo:     teamRepo,
		idGen:        idGen,
		defaultOvers: defaultOvers,
		logger:       logger.Named("match"),
		now:          time.Now,
	}
}

func (s *MatchService) CreateMatch(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.CreateMatch")
	defer span.End()

	input.TeamAID = strings.TrimSpace(input.TeamAID)
	input.TeamBID = strings.TrimSpace(input.TeamBID)
	input.FirstInningsTeamID = strings.TrimSpace(input.FirstInningsTeamID)
	input.Venue = strings.TrimSpace(input.Venue)

	if input.TeamAID == "" || input.TeamBID == "" {
		return match.Match{}, fmt.Errorf("%w: both team ids are required", ErrInvalidInput)
	}
	if input.OversLimit < 0 {
		return match.Match{}, fmt.Errorf("%w: overs limit cannot be negative", ErrInvalidInput)
	}
	for _, teamID := range []string{input.TeamAID, input.TeamBID} {
		_, exists, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return match.Match{}, fmt.Errorf("get team: %w", err)
		}
		if !exists {
			return match.Match{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
		}
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	now := s.now().UTC()
	overs := input.OversLimit
	if overs == 0 {
		overs = s.defaultOvers
	}
	first := input.FirstInningsTeamID
	if first == "" {
		first = input.TeamAID
	}
	scheduledAt := input.ScheduledAt.UTC()
	if input.ScheduledAt.IsZero() {
		scheduledAt = now
	}

	item := match.Match{
		ID:                 matchID,
		TeamAID:            input.TeamAID,
		TeamBID:            input.TeamBID,
		Venue:              input.Venue,
		Format:             match.NormalizeFormat(input.Format),
		ScheduledAt:        scheduledAt,
		OversLimit:         overs,
		CurrentInnings:     1,
		BattingTeamID:      first,
		FirstInningsTeamID: first,
		Status:             match.StatusScheduled,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := item.Validate(); err != nil {
		return match.Match{}, classifyDomainError(err)
	}

	if err := s.matchRepo.Create(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}
	s.logger.InfoContext(ctx, "match scheduled",
		"match_id", item.ID,
		"team_a_id", item.TeamAID,
		"team_b_id", item.TeamBID,
		"overs", item.OversLimit,
	)
	return item, nil
}

func (s *MatchService) GetMatch(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetMatch")
	defer span.End()

	return getMatch(ctx, s.matchRepo, matchID)
}

// ListMatches returns matches, optionally filtered by status, newest schedule first.
func (s *MatchService) ListMatches(ctx context.Context, status string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListMatches")
	defer span.End()

	var (
		items []match.Match
		err   error
	)
	switch value := match.Status(strings.ToUpper(strings.TrimSpace(status))); value {
	case "":
		items, err = s.matchRepo.List(ctx)
	case match.StatusScheduled, match.StatusLive, match.StatusCompleted:
		items, err = s.matchRepo.ListByStatus(ctx, value)
	default:
		return nil, fmt.Errorf("%w: unknown match status %q", ErrInvalidInput, status)
	}
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].ScheduledAt.Equal(items[j].ScheduledAt) {
			return items[i].ScheduledAt.After(items[j].ScheduledAt)
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func getMatch(ctx context.Context, repo match.Repository, matchID string) (match.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := repo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return item, nil
}
