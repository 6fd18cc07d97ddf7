package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/cricket-scorer/internal/domain/delivery"
	"github.com/riskibarqy/cricket-scorer/internal/infrastructure/notify"
	"github.com/riskibarqy/cricket-scorer/internal/platform/logging"
	"github.com/riskibarqy/cricket-scorer/internal/usecase"
)

// Subscriber is the onMatchChanged registration used by the live channel.
type Subscriber interface {
	Subscribe(matchID string, fn notify.Handler) func()
}

type Handler struct {
	teamService    *usecase.TeamService
	matchService   *usecase.MatchService
	scoringService *usecase.ScoringService
	queryService   *usecase.QueryService
	careerService  *usecase.CareerService
	changes        Subscriber
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	teamService *usecase.TeamService,
	matchService *usecase.MatchService,
	scoringService *usecase.ScoringService,
	queryService *usecase.QueryService,
	careerService *usecase.CareerService,
	changes Subscriber,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		teamService:    teamService,
		matchService:   matchService,
		scoringService: scoringService,
		queryService:   queryService,
		careerService:  careerService,
		changes:        changes,
		logger:         logger.Named("httpapi"),
		validator:      validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// decodeRequest reads a JSON body into dst and validates it. An empty body is
// accepted for requests whose fields are all optional.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any, allowEmpty bool) error {
	if r.Body == nil || r.Body == http.NoBody || r.ContentLength == 0 {
		if !allowEmpty {
			return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
		}
		return h.validateRequest(ctx, dst)
	}

	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive integer", usecase.ErrInvalidInput, name)
	}
	return v, nil
}

type createMatchRequest struct {
	TeamAID            string     `json:"team_a_id" validate:"required,max=64"`
	TeamBID            string     `json:"team_b_id" validate:"required,max=64,nefield=TeamAID"`
	FirstInningsTeamID string     `json:"first_innings_team_id" validate:"omitempty,max=64"`
	Venue              string     `json:"venue" validate:"omitempty,max=200"`
	Format             string     `json:"format" validate:"omitempty,max=16"`
	ScheduledAt        *time.Time `json:"scheduled_at"`
	OversLimit         int        `json:"overs_limit" validate:"gte=0,lte=100"`
}

func (r createMatchRequest) toInput() usecase.CreateMatchInput {
	input := usecase.CreateMatchInput{
		TeamAID:            r.TeamAID,
		TeamBID:            r.TeamBID,
		FirstInningsTeamID: r.FirstInningsTeamID,
		Venue:              r.Venue,
		Format:             r.Format,
		OversLimit:         r.OversLimit,
	}
	if r.ScheduledAt != nil {
		input.ScheduledAt = *r.ScheduledAt
	}
	return input
}

// submitDeliveryRequest leaves over and ball at zero to score the next ball.
type submitDeliveryRequest struct {
	Over          int    `json:"over" validate:"gte=0"`
	Ball          int    `json:"ball" validate:"gte=0,lte=6"`
	RunsScored    int    `json:"runs_scored" validate:"gte=0,lte=10"`
	ExtrasLabel   string `json:"extras_label" validate:"omitempty,max=16"`
	ExtrasCount   int    `json:"extras_count" validate:"gte=0,lte=10"`
	IsWicket      bool   `json:"is_wicket"`
	DismissalText string `json:"dismissal" validate:"omitempty,max=200"`
	StrikerID     string `json:"striker_id" validate:"omitempty,max=64"`
	NonStrikerID  string `json:"non_striker_id" validate:"omitempty,max=64"`
	BowlerID      string `json:"bowler_id" validate:"required,max=64"`
	Commentary    string `json:"commentary" validate:"omitempty,max=500"`
}

func (r submitDeliveryRequest) toRawEvent() delivery.RawEvent {
	return delivery.RawEvent{
		Over:          r.Over,
		Ball:          r.Ball,
		RunsScored:    r.RunsScored,
		ExtrasLabel:   r.ExtrasLabel,
		ExtrasCount:   r.ExtrasCount,
		IsWicket:      r.IsWicket,
		DismissalText: r.DismissalText,
		StrikerID:     r.StrikerID,
		NonStrikerID:  r.NonStrikerID,
		BowlerID:      r.BowlerID,
		Commentary:    r.Commentary,
	}
}

type completeInningsRequest struct {
	NextBattingTeamID string `json:"next_batting_team_id" validate:"omitempty,max=64"`
}

func matchPath(r *http.Request) string {
	return strings.TrimSpace(r.PathValue("matchID"))
}
