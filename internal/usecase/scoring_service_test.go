package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/cricket-scorer/internal/domain/delivery"
	"github.com/riskibarqy/cricket-scorer/internal/domain/match"
	"github.com/riskibarqy/cricket-scorer/internal/domain/player"
	deliverymock "github.com/riskibarqy/cricket-scorer/internal/mocks/domain/delivery"
	matchmock "github.com/riskibarqy/cricket-scorer/internal/mocks/domain/match"
	playermock "github.com/riskibarqy/cricket-scorer/internal/mocks/domain/player"
	"github.com/riskibarqy/cricket-scorer/internal/platform/logging"
)

func TestScoringService_SubmitDeliveryCommitsAndNotifies(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	m := env.scheduleMatch(t, 20)

	got := env.submit(t, m.ID, ball(0, 0, 1, "a1", "a2", "b4"))
	if got.Delivery.Over != 1 || got.Delivery.Ball != 1 || got.Delivery.Sequence != 1 {
		t.Fatalf("expected pointer 1.1 seq 1, got %s seq %d", got.Delivery.Label(), got.Delivery.Sequence)
	}
	if got.Delivery.ID != "dlv-1" || got.Delivery.BattingTeamID != "alpha" {
		t.Fatalf("unexpected delivery %+v", got.Delivery)
	}
	if got.Match.Version != m.Version+1 || got.Match.Status != match.StatusLive {
		t.Fatalf("expected live match at version %d, got %+v", m.Version+1, got.Match)
	}

	log, _ := env.matches.ListByMatch(context.Background(), m.ID)
	if len(log) != 1 {
		t.Fatalf("expected one stored delivery, got %d", len(log))
	}
	if kinds := env.notifier.kinds(); len(kinds) != 1 || kinds[0] != match.ChangeDelivery {
		t.Fatalf("unexpected notifications %v", kinds)
	}

	state, err := env.query.GetMatchState(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if state.State.StrikerID != "a2" || state.State.Current().Runs != 1 {
		t.Fatalf("expected a2 on strike after a single, got %+v", state.State)
	}
}

func TestScoringService_SubmitDeliveryRejectsOutOfOrder(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	m := env.scheduleMatch(t, 20)
	env.submit(t, m.ID, ball(1, 1, 0, "a1", "a2", "b4"))

	for _, raw := range []delivery.RawEvent{
		ball(1, 1, 0, "a1", "a2", "b4"),
		ball(1, 3, 0, "a1", "a2", "b4"),
		ball(2, 1, 0, "a1", "a2", "b4"),
	} {
		_, err := env.scoring.SubmitDelivery(context.Background(), m.ID, raw)
		if !errors.Is(err, ErrOutOfOrder) {
			t.Fatalf("ball %d.%d: expected ErrOutOfOrder, got %v", raw.Over, raw.Ball, err)
		}
	}

	log, _ := env.matches.ListByMatch(context.Background(), m.ID)
	if len(log) != 1 {
		t.Fatalf("rejected balls must not be stored, got %d", len(log))
	}
	if len(env.notifier.kinds()) != 1 {
		t.Fatalf("rejected balls must not notify")
	}
}

func TestScoringService_SubmitDeliveryValidatesInput(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	m := env.scheduleMatch(t, 20)

	tests := []struct {
		name string
		id   string
		raw  delivery.RawEvent
		want error
	}{
		{name: "missing match id", id: " ", raw: ball(1, 1, 0, "a1", "a2", "b4"), want: ErrInvalidInput},
		{name: "unknown match", id: "nope", raw: ball(1, 1, 0, "a1", "a2", "b4"), want: ErrNotFound},
		{name: "missing bowler", id: m.ID, raw: ball(1, 1, 0, "a1", "a2", ""), want: ErrInvalidInput},
		{name: "negative runs", id: m.ID, raw: ball(1, 1, -1, "a1", "a2", "b4"), want: ErrInvalidInput},
		{name: "unknown player", id: m.ID, raw: ball(1, 1, 0, "zz", "a2", "b4"), want: ErrNotFound},
		{name: "bowler from batting side", id: m.ID, raw: ball(1, 1, 0, "a1", "a2", "a3"), want: ErrInvalidInput},
		{name: "batter from fielding side", id: m.ID, raw: ball(1, 1, 0, "b1", "a2", "b4"), want: ErrInvalidInput},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.scoring.SubmitDelivery(context.Background(), tc.id, tc.raw)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	if log, _ := env.matches.ListByMatch(context.Background(), m.ID); len(log) != 0 {
		t.Fatalf("invalid balls must not be stored, got %d", len(log))
	}
}

func TestScoringService_FullMatchCompletesAndAppliesCareer(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	done := env.playOneOverMatch(t)

	if done.Status != match.StatusCompleted || done.WinnerTeamID != "bravo" {
		t.Fatalf("expected bravo win, got %+v", done)
	}
	if done.ResultText != "Bravo won by 10 wickets" {
		t.Fatalf("unexpected result text %q", done.ResultText)
	}
	if done.CompletedAt == nil || !done.CompletedAt.Equal(fixedNow) {
		t.Fatalf("expected completion time, got %v", done.CompletedAt)
	}

	kinds := env.notifier.kinds()
	if kinds[5] != match.ChangeInningsComplete || kinds[len(kinds)-1] != match.ChangeMatchComplete {
		t.Fatalf("unexpected notification kinds %v", kinds)
	}

	career, ok, err := env.careers.Get(context.Background(), "b1", "T20")
	if err != nil || !ok {
		t.Fatalf("expected career record for b1: ok=%v err=%v", ok, err)
	}
	if career.Matches != 1 || career.Runs != 8 || career.Sixes != 1 {
		t.Fatalf("unexpected career stats %+v", career)
	}

	before, err := env.query.GetScorecard(context.Background(), done.ID)
	if err != nil {
		t.Fatalf("scorecard before rejected ball: %v", err)
	}
	notified := len(env.notifier.kinds())

	_, err = env.scoring.SubmitDelivery(context.Background(), done.ID, ball(1, 4, 4, "b1", "b2", "a4"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected completed match to reject balls, got %v", err)
	}

	after, err := env.query.GetScorecard(context.Background(), done.ID)
	if err != nil {
		t.Fatalf("scorecard after rejected ball: %v", err)
	}
	if after.Match.Version != done.Version || after.Match.Status != match.StatusCompleted {
		t.Fatalf("rejected ball changed the match: %+v", after.Match)
	}
	if log, _ := env.matches.ListByMatch(context.Background(), done.ID); len(log) != 9 {
		t.Fatalf("rejected ball must not be stored, got %d deliveries", len(log))
	}
	if !reflect.DeepEqual(before.Summary, after.Summary) {
		t.Fatalf("rejected ball changed figures:\nbefore %+v\nafter  %+v", before.Summary, after.Summary)
	}
	if got := after.Summary.Innings[1].Score(); got != "8/0" {
		t.Fatalf("unexpected chase total %s", got)
	}
	if len(env.notifier.kinds()) != notified {
		t.Fatalf("rejected ball must not notify")
	}
	if again, _, _ := env.careers.Get(context.Background(), "b1", "T20"); again.Runs != career.Runs || again.Matches != career.Matches {
		t.Fatalf("rejected ball changed career figures: %+v", again)
	}

	again, err := env.scoring.CompleteMatch(context.Background(), done.ID)
	if err != nil {
		t.Fatalf("complete completed match: %v", err)
	}
	if again.Version != done.Version {
		t.Fatalf("repeat completion must not bump version: %d vs %d", again.Version, done.Version)
	}
}

func TestScoringService_NotifierFailureDoesNotFailWrite(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.notifier.err = errors.New("broker down")
	m := env.scheduleMatch(t, 20)

	if _, err := env.scoring.SubmitDelivery(context.Background(), m.ID, ball(1, 1, 2, "a1", "a2", "b4")); err != nil {
		t.Fatalf("expected write to succeed despite notifier failure, got %v", err)
	}
	if log, _ := env.matches.ListByMatch(context.Background(), m.ID); len(log) != 1 {
		t.Fatalf("expected delivery stored")
	}
}

func TestScoringService_CompleteCurrentInnings(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	m := env.scheduleMatch(t, 20)
	env.submit(t, m.ID, ball(1, 1, 4, "a1", "a2", "b4"))

	if _, err := env.scoring.CompleteCurrentInnings(context.Background(), m.ID, "alpha"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected same side to be rejected, got %v", err)
	}

	closed, err := env.scoring.CompleteCurrentInnings(context.Background(), m.ID, "")
	if err != nil {
		t.Fatalf("close innings: %v", err)
	}
	if !closed.Inning1Complete || closed.BattingTeamID != "bravo" || closed.CurrentInnings != 2 {
		t.Fatalf("unexpected match after innings close %+v", closed)
	}

	again, err := env.scoring.CompleteCurrentInnings(context.Background(), m.ID, "bravo")
	if err != nil {
		t.Fatalf("repeat close: %v", err)
	}
	if again.Version != closed.Version {
		t.Fatalf("repeat close must be a no-op")
	}

	got := env.submit(t, m.ID, ball(1, 1, 1, "b1", "b2", "a4"))
	if got.Delivery.Innings != 2 || got.Delivery.BattingTeamID != "bravo" {
		t.Fatalf("expected innings 2 delivery, got %+v", got.Delivery)
	}

	final, err := env.scoring.CompleteCurrentInnings(context.Background(), m.ID, "")
	if err != nil {
		t.Fatalf("close innings 2: %v", err)
	}
	if final.Status != match.StatusCompleted || final.ResultText != "Alpha won by 3 runs" {
		t.Fatalf("expected alpha win by 3 runs, got %+v", final)
	}
}

func TestScoringService_VersionConflictIsOutOfOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	deliveryRepo := deliverymock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)

	stored := match.Match{
		ID: "m1", TeamAID: "alpha", TeamBID: "bravo", OversLimit: 20,
		CurrentInnings: 1, BattingTeamID: "alpha", FirstInningsTeamID: "alpha",
		Status: match.StatusScheduled, Version: 3,
	}
	matchRepo.On("GetByID", mock.Anything, "m1").Return(stored, true, nil).Once()
	deliveryRepo.On("ListByMatch", mock.Anything, "m1").Return([]delivery.Delivery{}, nil).Once()
	playerRepo.On("GetByIDs", mock.Anything, []string{"a1", "a2", "b4"}).Return([]player.Player{
		{ID: "a1", TeamID: "alpha"}, {ID: "a2", TeamID: "alpha"}, {ID: "b4", TeamID: "bravo"},
	}, nil).Once()
	matchRepo.
		On("Save", mock.Anything, mock.MatchedBy(func(m match.Match) bool { return m.Version == 4 }), int64(3), mock.AnythingOfType("*delivery.Delivery")).
		Return(match.ErrVersionConflict).
		Once()

	notifier := &recordingNotifier{}
	svc := NewScoringService(matchRepo, deliveryRepo, playerRepo, nil, notifier, nil, &sequenceIDs{prefix: "dlv"}, logging.NewNop())

	_, err := svc.SubmitDelivery(ctx, "m1", ball(1, 1, 0, "a1", "a2", "b4"))
	if !errors.Is(err, ErrOutOfOrder) || !errors.Is(err, ErrConflict) {
		t.Fatalf("expected out of order conflict, got %v", err)
	}
	if len(notifier.kinds()) != 0 {
		t.Fatalf("failed commit must not notify")
	}
}
