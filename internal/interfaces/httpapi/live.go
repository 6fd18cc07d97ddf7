package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"github.com/riskibarqy/cricket-scorer/internal/domain/match"
	"github.com/riskibarqy/cricket-scorer/internal/infrastructure/notify"
	"github.com/riskibarqy/cricket-scorer/internal/usecase"
)

const (
	liveSendBuf       = 256
	liveWriteDeadline = 5 * time.Second
	livePongWait      = 30 * time.Second
	livePingInterval  = 20 * time.Second
	liveKindSubscribe = "SUBSCRIBED"
)

// The live channel is read-only, so any origin may subscribe.
var liveUpgrader = websocket.Upgrader{
	CheckOrigin: func(_ *http.Request) bool { return true },
}

type liveClient struct {
	matchID string
	conn    *websocket.Conn
	send    chan []byte
	done    chan struct{}
	gate    liveGate
}

// liveGate keeps frames on one connection in increasing version order. Hub
// handlers run concurrently, so an older change can arrive after a newer one.
// Until the greeting is queued only the newest change is held back.
type liveGate struct {
	mu      sync.Mutex
	opened  bool
	last    int64
	pending []byte
	pendVer int64
}

// open queues the greeting for version and then any newer held change.
func (g *liveGate) open(send chan<- []byte, version int64, hello []byte) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.opened = true
	g.last = version
	if hello != nil {
		trySend(send, hello)
	}
	if g.pending != nil && g.pendVer > g.last {
		if trySend(send, g.pending) {
			g.last = g.pendVer
		}
	}
	g.pending = nil
}

// offer queues data when version is newer than anything already queued. It
// reports false for stale frames and for frames dropped on a full buffer.
func (g *liveGate) offer(send chan<- []byte, version int64, data []byte) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.opened {
		if version > g.pendVer {
			g.pending, g.pendVer = data, version
		}
		return true
	}
	if version <= g.last {
		return false
	}
	if !trySend(send, data) {
		return false
	}
	g.last = version
	return true
}

func trySend(send chan<- []byte, data []byte) bool {
	select {
	case send <- data:
		return true
	default:
		return false
	}
}

// LiveMatch upgrades to a websocket and pushes one {matchId, version} frame
// per committed change of the match. Slow clients lose frames instead of
// holding up the notifier.
func (h *Handler) LiveMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LiveMatch")
	defer span.End()

	if h.changes == nil {
		writeError(ctx, w, fmt.Errorf("%w: live notifications are not configured", usecase.ErrDependencyUnavailable))
		return
	}

	matchID := matchPath(r)
	c := &liveClient{
		matchID: matchID,
		send:    make(chan []byte, liveSendBuf),
		done:    make(chan struct{}),
	}

	// Subscribe before reading the match so no commit falls between the
	// greeting and the first pushed change.
	cancel := h.changes.Subscribe(matchID, func(ctx context.Context, change match.Change) {
		data, err := sonic.Marshal(notify.NewChangeMessage(change))
		if err != nil {
			h.logger.WarnContext(ctx, "live marshal failed", "match_id", change.MatchID, "error", err)
			return
		}
		if !c.gate.offer(c.send, change.Version, data) {
			h.logger.DebugContext(ctx, "live frame skipped", "match_id", change.MatchID, "version", change.Version)
		}
	})

	current, err := h.matchService.GetMatch(ctx, matchID)
	if err != nil {
		cancel()
		writeError(ctx, w, err)
		return
	}

	conn, err := liveUpgrader.Upgrade(w, r, nil)
	if err != nil {
		cancel()
		h.logger.WarnContext(ctx, "live upgrade failed", "match_id", matchID, "error", err)
		return
	}
	c.conn = conn

	hello, err := sonic.Marshal(subscribedMessage(current))
	if err != nil {
		hello = nil
	}
	c.gate.open(c.send, current.Version, hello)
	h.logger.InfoContext(ctx, "live client connected", "match_id", current.ID, "version", current.Version)

	// The request context ends with this handler; the pumps outlive it.
	go h.liveWritePump(c, cancel)
	go liveReadPump(c)
}

func subscribedMessage(m match.Match) notify.ChangeMessage {
	return notify.ChangeMessage{
		MatchID:    m.ID,
		Version:    m.Version,
		Kind:       liveKindSubscribe,
		Status:     string(m.Status),
		OccurredAt: m.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// liveWritePump owns the connection: on exit it drops the subscription and
// closes the socket. c.send is never closed, so late handlers cannot panic.
func (h *Handler) liveWritePump(c *liveClient, cancel func()) {
	ticker := time.NewTicker(livePingInterval)
	defer func() {
		ticker.Stop()
		cancel()
		_ = c.conn.Close()
		h.logger.Info("live client disconnected", "match_id", c.matchID)
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(liveWriteDeadline))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-c.done:
			return
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(liveWriteDeadline))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// liveReadPump only handles pongs and close frames; it signals the writer on exit.
func liveReadPump(c *liveClient) {
	defer close(c.done)

	_ = c.conn.SetReadDeadline(time.Now().Add(livePongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(livePongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
