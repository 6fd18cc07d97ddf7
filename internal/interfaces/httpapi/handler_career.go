package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) GetPlayerCareer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerCareer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	format := r.URL.Query().Get("format")
	item, err := h.queryService.GetPlayerCareerStats(ctx, playerID, format)
	if err != nil {
		h.logger.WarnContext(ctx, "get player career failed", "player_id", playerID, "format", format, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, careerToDTO(item))
}

func (h *Handler) RebuildCareer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RebuildCareer")
	defer span.End()

	result, err := h.careerService.Rebuild(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "rebuild career stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rebuildDTO{
		Matches:    result.Matches,
		Applied:    result.Applied,
		DurationMs: result.DurationMs,
	})
}
