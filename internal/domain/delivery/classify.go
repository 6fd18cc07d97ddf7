package delivery

import (
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

var ErrInvalidDelivery = crerr.New("invalid delivery")

// ClassifyLabel maps a free-text extras label to a category.
func ClassifyLabel(label string) Category {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "wide", "wd":
		return CategoryWide
	case "no-ball", "noball", "no ball", "nb":
		return CategoryNoBall
	case "bye", "b":
		return CategoryBye
	case "leg-bye", "legbye", "leg bye", "lb":
		return CategoryLegBye
	default:
		return CategoryLegal
	}
}

// Classify validates a raw event and splits its runs between batter and extras.
// It has no side effects; pointer and roster checks belong to the caller.
func Classify(raw RawEvent) (Delivery, error) {
	raw.StrikerID = strings.TrimSpace(raw.StrikerID)
	raw.NonStrikerID = strings.TrimSpace(raw.NonStrikerID)
	raw.BowlerID = strings.TrimSpace(raw.BowlerID)
	raw.DismissalText = strings.TrimSpace(raw.DismissalText)

	category := ClassifyLabel(raw.ExtrasLabel)

	if raw.BowlerID == "" {
		return Delivery{}, crerr.Wrap(ErrInvalidDelivery, "bowler is required")
	}
	if category == CategoryLegal && raw.StrikerID == "" {
		return Delivery{}, crerr.Wrap(ErrInvalidDelivery, "striker is required for a legal delivery")
	}
	if raw.RunsScored < 0 {
		return Delivery{}, crerr.Wrapf(ErrInvalidDelivery, "runs scored cannot be negative: %d", raw.RunsScored)
	}
	if raw.ExtrasCount < 0 {
		return Delivery{}, crerr.Wrapf(ErrInvalidDelivery, "extras count cannot be negative: %d", raw.ExtrasCount)
	}
	if raw.IsWicket && raw.DismissalText == "" {
		return Delivery{}, crerr.Wrap(ErrInvalidDelivery, "dismissal description is required for a wicket")
	}
	if raw.StrikerID != "" && raw.StrikerID == raw.NonStrikerID {
		return Delivery{}, crerr.Wrapf(ErrInvalidDelivery, "striker and non-striker must differ: %s", raw.StrikerID)
	}

	out := Delivery{
		Over:         raw.Over,
		Ball:         raw.Ball,
		Category:     category,
		RunsScored:   raw.RunsScored,
		IsWicket:     raw.IsWicket,
		StrikerID:    raw.StrikerID,
		NonStrikerID: raw.NonStrikerID,
		BowlerID:     raw.BowlerID,
		Commentary:   strings.TrimSpace(raw.Commentary),
	}
	if raw.IsWicket {
		out.Dismissal = raw.DismissalText
	}

	switch category {
	case CategoryLegal:
		out.BatterRuns = raw.RunsScored
	case CategoryBye, CategoryLegBye:
		out.ExtrasRuns = raw.RunsScored
		if out.ExtrasRuns == 0 {
			out.ExtrasRuns = raw.ExtrasCount
		}
	case CategoryWide:
		out.ExtrasRuns = max(raw.RunsScored+raw.ExtrasCount, 1)
	case CategoryNoBall:
		out.BatterRuns = raw.RunsScored
		out.ExtrasRuns = max(raw.ExtrasCount, 1)
	}

	return out, nil
}

// PositionLabel renders a 1-based (over, ball) pair in scorebook notation.
func PositionLabel(over, ball int) string {
	if over <= 0 {
		return "0." + strconv.Itoa(max(ball, 0))
	}
	return strconv.Itoa(over-1) + "." + strconv.Itoa(ball)
}

// OversLabel renders a legal ball count as completed overs, e.g. 20 balls -> "3.2".
func OversLabel(legalBalls int) string {
	if legalBalls <= 0 {
		return "0.0"
	}
	return strconv.Itoa(legalBalls/BallsPerOver) + "." + strconv.Itoa(legalBalls%BallsPerOver)
}
