package httpapi

import (
	"net/http"
)

func (h *Handler) SubmitDelivery(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitDelivery")
	defer span.End()

	matchID := matchPath(r)
	var req submitDeliveryRequest
	if err := h.decodeRequest(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scoringService.SubmitDelivery(ctx, matchID, req.toRawEvent())
	if err != nil {
		h.logger.WarnContext(ctx, "submit delivery failed",
			"match_id", matchID,
			"over", req.Over,
			"ball", req.Ball,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, submitDeliveryResponse{
		Delivery:         deliveryToDTO(result.Delivery),
		Match:            matchToDTO(result.Match),
		OverCompleted:    result.Transition.OverCompleted,
		InningsCompleted: result.Transition.InningsCompleted,
		MatchCompleted:   result.Transition.MatchCompleted,
		Reason:           result.Transition.Reason,
	})
}

func (h *Handler) CompleteInnings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompleteInnings")
	defer span.End()

	matchID := matchPath(r)
	var req completeInningsRequest
	if err := h.decodeRequest(ctx, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.scoringService.CompleteCurrentInnings(ctx, matchID, req.NextBattingTeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "complete innings failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) CompleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompleteMatch")
	defer span.End()

	matchID := matchPath(r)
	item, err := h.scoringService.CompleteMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "complete match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}
