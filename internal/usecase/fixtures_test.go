package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/cricket-scorer/internal/domain/delivery"
	"github.com/riskibarqy/cricket-scorer/internal/domain/match"
	"github.com/riskibarqy/cricket-scorer/internal/domain/player"
	"github.com/riskibarqy/cricket-scorer/internal/domain/stats"
	"github.com/riskibarqy/cricket-scorer/internal/domain/team"
	"github.com/riskibarqy/cricket-scorer/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/cricket-scorer/internal/platform/cache"
	"github.com/riskibarqy/cricket-scorer/internal/platform/logging"
)

var fixedNow = time.Date(2026, 4, 2, 14, 0, 0, 0, time.UTC)

type sequenceIDs struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func (g *sequenceIDs) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next), nil
}

type recordingNotifier struct {
	mu      sync.Mutex
	changes []match.Change
	err     error
}

func (n *recordingNotifier) NotifyMatchChanged(_ context.Context, change match.Change) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changes = append(n.changes, change)
	return n.err
}

func (n *recordingNotifier) kinds() []match.ChangeKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]match.ChangeKind, 0, len(n.changes))
	for _, c := range n.changes {
		out = append(out, c.Kind)
	}
	return out
}

type testEnv struct {
	matches  *memory.MatchRepository
	teams    *memory.TeamRepository
	players  *memory.PlayerRepository
	careers  *memory.CareerRepository
	notifier *recordingNotifier
	scoring  *ScoringService
	matchSvc *MatchService
	query    *QueryService
	career   *CareerService
}

func testTeams() []team.Team {
	return []team.Team{
		{ID: "alpha", Name: "Alpha", Short: "ALP"},
		{ID: "bravo", Name: "Bravo", Short: "BRV"},
	}
}

func testPlayers() []player.Player {
	out := make([]player.Player, 0, 8)
	for _, side := range []string{"alpha", "bravo"} {
		prefix := side[:1]
		for i := 1; i <= 4; i++ {
			out = append(out, player.Player{
				ID:     fmt.Sprintf("%s%d", prefix, i),
				TeamID: side,
				Name:   fmt.Sprintf("%s player %d", side, i),
				Role:   player.RoleAllRounder,
			})
		}
	}
	return out
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		matches:  memory.NewMatchRepository(),
		teams:    memory.NewTeamRepository(testTeams()),
		players:  memory.NewPlayerRepository(testPlayers()),
		careers:  memory.NewCareerRepository(),
		notifier: &recordingNotifier{},
	}
	logger := logging.NewNop()

	env.career = NewCareerService(env.matches, env.matches, env.careers, 2, logger)
	env.scoring = NewScoringService(env.matches, env.matches, env.players, env.teams, env.notifier, env.career, &sequenceIDs{prefix: "dlv"}, logger)
	env.scoring.now = func() time.Time { return fixedNow }
	env.matchSvc = NewMatchService(env.matches, env.teams, &sequenceIDs{prefix: "match"}, 20, logger)
	env.matchSvc.now = func() time.Time { return fixedNow }
	env.query = NewQueryService(env.matches, env.matches, env.players, env.teams, env.careers, cache.NewStore[stats.Summary](0))
	return env
}

// scheduleMatch creates an alpha v bravo match with alpha batting first.
func (e *testEnv) scheduleMatch(t *testing.T, overs int) match.Match {
	t.Helper()

	m, err := e.matchSvc.CreateMatch(context.Background(), CreateMatchInput{
		TeamAID:    "alpha",
		TeamBID:    "bravo",
		Format:     "t20",
		OversLimit: overs,
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	return m
}

func (e *testEnv) submit(t *testing.T, matchID string, raw delivery.RawEvent) SubmitDeliveryResult {
	t.Helper()

	got, err := e.scoring.SubmitDelivery(context.Background(), matchID, raw)
	if err != nil {
		t.Fatalf("submit %d.%d: %v", raw.Over, raw.Ball, err)
	}
	return got
}

func ball(over, ballNo, runs int, striker, nonStriker, bowler string) delivery.RawEvent {
	return delivery.RawEvent{
		Over:         over,
		Ball:         ballNo,
		RunsScored:   runs,
		StrikerID:    striker,
		NonStrikerID: nonStriker,
		BowlerID:     bowler,
	}
}

// playOneOverMatch scores a completed one over match: alpha make 6, bravo
// chase it down with 8 from three balls.
func (e *testEnv) playOneOverMatch(t *testing.T) match.Match {
	t.Helper()

	m := e.scheduleMatch(t, 1)
	e.submit(t, m.ID, ball(1, 1, 4, "a1", "a2", "b4"))
	e.submit(t, m.ID, ball(1, 2, 0, "a1", "a2", "b4"))
	e.submit(t, m.ID, ball(1, 3, 1, "a1", "a2", "b4"))
	e.submit(t, m.ID, ball(1, 4, 1, "a2", "a1", "b4"))
	e.submit(t, m.ID, ball(1, 5, 0, "a1", "a2", "b4"))
	e.submit(t, m.ID, ball(1, 6, 0, "a1", "a2", "b4"))

	e.submit(t, m.ID, ball(1, 1, 2, "b1", "b2", "a4"))
	e.submit(t, m.ID, ball(1, 2, 0, "b1", "b2", "a4"))
	last := e.submit(t, m.ID, ball(1, 3, 6, "b1", "b2", "a4"))
	if !last.Transition.MatchCompleted {
		t.Fatalf("expected chase to complete the match, got %+v", last.Transition)
	}
	return last.Match
}
