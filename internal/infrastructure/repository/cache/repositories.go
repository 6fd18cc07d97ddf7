package cache

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/cricket-scorer/internal/domain/player"
	"github.com/riskibarqy/cricket-scorer/internal/domain/team"
	basecache "github.com/riskibarqy/cricket-scorer/internal/platform/cache"
)

type cachedByID[V any] struct {
	value  V
	exists bool
}

type TeamRepository struct {
	next team.Repository
	list *basecache.Store[[]team.Team]
	byID *basecache.Store[cachedByID[team.Team]]
}

func NewTeamRepository(next team.Repository, ttl time.Duration) *TeamRepository {
	return &TeamRepository{
		next: next,
		list: basecache.NewStore[[]team.Team](ttl),
		byID: basecache.NewStore[cachedByID[team.Team]](ttl),
	}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	items, err := r.list.GetOrLoad(ctx, "team:list", func(ctx context.Context) ([]team.Team, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	key := basecache.Key("team", "id", teamID)
	cached, err := r.byID.GetOrLoad(ctx, key, func(ctx context.Context) (cachedByID[team.Team], error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return cachedByID[team.Team]{}, err
		}
		return cachedByID[team.Team]{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	return cached.value, cached.exists, nil
}

type PlayerRepository struct {
	next   player.Repository
	byTeam *basecache.Store[[]player.Player]
	byID   *basecache.Store[cachedByID[player.Player]]
	byIDs  *basecache.Store[[]player.Player]
}

func NewPlayerRepository(next player.Repository, ttl time.Duration) *PlayerRepository {
	return &PlayerRepository{
		next:   next,
		byTeam: basecache.NewStore[[]player.Player](ttl),
		byID:   basecache.NewStore[cachedByID[player.Player]](ttl),
		byIDs:  basecache.NewStore[[]player.Player](ttl),
	}
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID string) ([]player.Player, error) {
	key := basecache.Key("player", "team", teamID)
	items, err := r.byTeam.GetOrLoad(ctx, key, func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.ListByTeam(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	key := basecache.Key("player", "id", playerID)
	cached, err := r.byID.GetOrLoad(ctx, key, func(ctx context.Context) (cachedByID[player.Player], error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return cachedByID[player.Player]{}, err
		}
		return cachedByID[player.Player]{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	return cached.value, cached.exists, nil
}

// GetByIDs keys on the sorted id set so argument order does not fragment the cache.
func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	ids := append([]string(nil), playerIDs...)
	sort.Strings(ids)
	key := basecache.Key("player", "ids", strings.Join(ids, ","))

	items, err := r.byIDs.GetOrLoad(ctx, key, func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]player.Player(nil), items...), nil
}
