package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/cricket-scorer/internal/domain/delivery"
	"github.com/riskibarqy/cricket-scorer/internal/domain/match"
	"github.com/riskibarqy/cricket-scorer/internal/domain/player"
	"github.com/riskibarqy/cricket-scorer/internal/domain/team"
	idgen "github.com/riskibarqy/cricket-scorer/internal/platform/id"
	"github.com/riskibarqy/cricket-scorer/internal/platform/logging"
	"github.com/riskibarqy/cricket-scorer/internal/platform/resilience"
)

// ChangeNotifier receives a change after it has been committed.
type ChangeNotifier interface {
	NotifyMatchChanged(ctx context.Context, change match.Change) error
}

// CompletionHook runs after a match completion has been committed.
type CompletionHook interface {
	OnMatchCompleted(ctx context.Context, m match.Match) error
}

// SubmitDeliveryResult is the accepted delivery plus the match it produced.
type SubmitDeliveryResult struct {
	Delivery   delivery.Delivery
	Match      match.Match
	Transition match.Transition
}

// ScoringService is the single writer of match state.
type ScoringService struct {
	matchRepo    match.Repository
	deliveryRepo delivery.Repository
	playerRepo   player.Repository
	teamRepo     team.Repository
	notifier     ChangeNotifier
	completion   CompletionHook
	idGen        idgen.Generator
	logger       *logging.Logger
	locks        resilience.KeyedMutex
	now          func() time.Time
}

func NewScoringService(
	matchRepo match.Repository,
	deliveryRepo delivery.Repository,
	playerRepo player.Repository,
	teamRepo team.Repository,
	notifier ChangeNotifier,
	completion CompletionHook,
	idGen idgen.Generator,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScoringService{
		matchRepo:    matchRepo,
		deliveryRepo: deliveryRepo,
		playerRepo:   playerRepo,
		teamRepo:     teamRepo,
		notifier:     notifier,
		completion:   completion,
		idGen:        idGen,
		logger:       logger.Named("scoring"),
		now:          time.Now,
	}
}

// SubmitDelivery classifies, validates and commits one ball.
func (s *ScoringService) SubmitDelivery(ctx context.Context, matchID string, raw delivery.RawEvent) (SubmitDeliveryResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.SubmitDelivery")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return SubmitDeliveryResult{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	span.SetAttributes(attribute.String("match.id", matchID))

	classified, err := delivery.Classify(raw)
	if err != nil {
		return SubmitDeliveryResult{}, classifyDomainError(err)
	}

	unlock := s.locks.Lock(matchID)
	defer unlock()

	current, state, err := s.loadState(ctx, matchID)
	if err != nil {
		return SubmitDeliveryResult{}, err
	}
	if current.IsCompleted() {
		return SubmitDeliveryResult{}, fmt.Errorf("%w: match %s is already completed", ErrInvalidInput, matchID)
	}

	accepted, transition, err := state.Submit(classified)
	if err != nil {
		return SubmitDeliveryResult{}, classifyDomainError(err)
	}
	if err := s.validateRoster(ctx, current, accepted); err != nil {
		return SubmitDeliveryResult{}, err
	}

	deliveryID, err := s.idGen.NewID()
	if err != nil {
		return SubmitDeliveryResult{}, fmt.Errorf("generate delivery id: %w", err)
	}
	now := s.now().UTC()
	accepted.ID = deliveryID
	accepted.CreatedAt = now

	updated, err := s.commit(ctx, current, state, &accepted, now)
	if err != nil {
		return SubmitDeliveryResult{}, err
	}

	s.logger.InfoContext(ctx, "delivery accepted",
		"match_id", matchID,
		"sequence", accepted.Sequence,
		"innings", accepted.Innings,
		"ball", accepted.Label(),
		"category", accepted.Category,
		"runs", accepted.TotalRuns(),
		"wicket", accepted.IsWicket,
		"version", updated.Version,
	)
	if transition.Changed() {
		s.logger.InfoContext(ctx, "innings transition",
			"match_id", matchID,
			"innings_completed", transition.InningsCompleted,
			"match_completed", transition.MatchCompleted,
			"reason", transition.Reason,
		)
	}

	kind := match.ChangeDelivery
	if transition.MatchCompleted {
		kind = match.ChangeMatchComplete
	} else if transition.InningsCompleted > 0 {
		kind = match.ChangeInningsComplete
	}
	s.afterCommit(ctx, updated, accepted.Sequence, kind, transition.MatchCompleted)

	return SubmitDeliveryResult{
		Delivery:   accepted,
		Match:      updated,
		Transition: transition,
	}, nil
}

// CompleteCurrentInnings closes the running innings. Repeating the call after
// the innings has closed returns the match unchanged.
func (s *ScoringService) CompleteCurrentInnings(ctx context.Context, matchID, nextBattingTeamID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.CompleteCurrentInnings")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	unlock := s.locks.Lock(matchID)
	defer unlock()

	current, state, err := s.loadState(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}

	transition, err := state.CompleteInnings(strings.TrimSpace(nextBattingTeamID))
	if err != nil {
		return match.Match{}, classifyDomainError(err)
	}
	if !transition.Changed() {
		return current, nil
	}

	updated, err := s.commit(ctx, current, state, nil, s.now().UTC())
	if err != nil {
		return match.Match{}, err
	}
	s.logger.InfoContext(ctx, "innings closed",
		"match_id", matchID,
		"innings_completed", transition.InningsCompleted,
		"match_completed", transition.MatchCompleted,
		"batting_team_id", updated.BattingTeamID,
	)

	kind := match.ChangeInningsComplete
	if transition.MatchCompleted {
		kind = match.ChangeMatchComplete
	}
	s.afterCommit(ctx, updated, state.Sequence, kind, transition.MatchCompleted)
	return updated, nil
}

// CompleteMatch computes and stores the result. It is a no-op for a completed match.
func (s *ScoringService) CompleteMatch(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.CompleteMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	unlock := s.locks.Lock(matchID)
	defer unlock()

	current, state, err := s.loadState(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if !state.CompleteMatch().Changed() {
		return current, nil
	}

	updated, err := s.commit(ctx, current, state, nil, s.now().UTC())
	if err != nil {
		return match.Match{}, err
	}
	s.logger.InfoContext(ctx, "match completed",
		"match_id", matchID,
		"winner_team_id", updated.WinnerTeamID,
		"result", updated.ResultText,
	)

	s.afterCommit(ctx, updated, state.Sequence, match.ChangeMatchComplete, true)
	return updated, nil
}

func (s *ScoringService) loadState(ctx context.Context, matchID string) (match.Match, match.State, error) {
	current, ok, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, match.State{}, fmt.Errorf("get match: %w", err)
	}
	if !ok {
		return match.Match{}, match.State{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	log, err := s.deliveryRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, match.State{}, fmt.Errorf("list deliveries: %w", err)
	}
	state, err := match.Replay(current, log)
	if err != nil {
		return match.Match{}, match.State{}, fmt.Errorf("replay match %s: %w", matchID, err)
	}
	return current, state, nil
}

func (s *ScoringService) commit(ctx context.Context, current match.Match, state match.State, appended *delivery.Delivery, now time.Time) (match.Match, error) {
	resultText := ""
	if state.Phase == match.PhaseMatchComplete && !current.IsCompleted() && state.Result != nil {
		resultText = state.Result.Describe(s.teamName(ctx, state.Result.WinnerTeamID))
	}

	updated := state.Project(current, now, resultText)
	updated.Version = current.Version + 1
	if err := updated.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("project match %s: %w", current.ID, err)
	}

	if err := s.matchRepo.Save(ctx, updated, current.Version, appended); err != nil {
		if errors.Is(err, match.ErrVersionConflict) {
			return match.Match{}, classifyDomainError(err)
		}
		return match.Match{}, fmt.Errorf("save match: %w", err)
	}
	return updated, nil
}

// afterCommit never fails the write: notification and career errors are logged only.
func (s *ScoringService) afterCommit(ctx context.Context, m match.Match, sequence int, kind match.ChangeKind, completed bool) {
	if completed && s.completion != nil {
		if err := s.completion.OnMatchCompleted(ctx, m); err != nil {
			s.logger.WarnContext(ctx, "apply career stats failed", "match_id", m.ID, "error", err)
		}
	}
	if s.notifier == nil {
		return
	}

	change := match.Change{
		MatchID:    m.ID,
		Version:    m.Version,
		Sequence:   sequence,
		Kind:       kind,
		Status:     m.Status,
		OccurredAt: m.UpdatedAt,
	}
	if err := s.notifier.NotifyMatchChanged(ctx, change); err != nil {
		s.logger.WarnContext(ctx, "notify match changed failed",
			"match_id", m.ID,
			"version", m.Version,
			"error", err,
		)
	}
}

// validateRoster checks that batters belong to the batting side and the bowler to the fielding side.
func (s *ScoringService) validateRoster(ctx context.Context, m match.Match, d delivery.Delivery) error {
	ids := make([]string, 0, 3)
	for _, id := range []string{d.StrikerID, d.NonStrikerID, d.BowlerID} {
		if id != "" {
			ids = append(ids, id)
		}
	}

	players, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("get players by ids: %w", err)
	}
	teamByPlayer := make(map[string]string, len(players))
	for _, p := range players {
		teamByPlayer[p.ID] = p.TeamID
	}
	for _, id := range ids {
		if _, ok := teamByPlayer[id]; !ok {
			return fmt.Errorf("%w: player=%s", ErrNotFound, id)
		}
	}

	fielding := m.OtherTeam(d.BattingTeamID)
	for _, id := range []string{d.StrikerID, d.NonStrikerID} {
		if id != "" && teamByPlayer[id] != d.BattingTeamID {
			return fmt.Errorf("%w: batter %s does not play for batting team %s", ErrInvalidInput, id, d.BattingTeamID)
		}
	}
	if teamByPlayer[d.BowlerID] != fielding {
		return fmt.Errorf("%w: bowler %s does not play for fielding team %s", ErrInvalidInput, d.BowlerID, fielding)
	}
	return nil
}

func (s *ScoringService) teamName(ctx context.Context, teamID string) string {
	if teamID == "" || s.teamRepo == nil {
		return teamID
	}
	t, ok, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil || !ok {
		return teamID
	}
	return t.DisplayName()
}
