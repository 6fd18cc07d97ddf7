package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/cricket-scorer/internal/domain/stats"
)

func (h *Handler) GetScorecard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScorecard")
	defer span.End()

	matchID := matchPath(r)
	card, err := h.queryService.GetScorecard(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get scorecard failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scorecardToDTO(card))
}

func (h *Handler) GetInsights(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetInsights")
	defer span.End()

	matchID := matchPath(r)
	topN, err := queryInt(r, "top", stats.DefaultTopN)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	insights, err := h.queryService.GetInsights(ctx, matchID, topN)
	if err != nil {
		h.logger.WarnContext(ctx, "get insights failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, insightsToDTO(insights))
}

func (h *Handler) GetPlayerMatchStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerMatchStats")
	defer span.End()

	matchID := matchPath(r)
	playerID := strings.TrimSpace(r.PathValue("playerID"))
	item, err := h.queryService.GetPlayerMatchStats(ctx, matchID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player match stats failed", "match_id", matchID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerMatchStatsToDTO(item))
}

func (h *Handler) GetMatchState(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchState")
	defer span.End()

	matchID := matchPath(r)
	live, err := h.queryService.GetMatchState(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match state failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, liveStateToDTO(live))
}
