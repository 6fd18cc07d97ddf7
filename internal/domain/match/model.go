package match

import (
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
)

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusLive      Status = "LIVE"
	StatusCompleted Status = "COMPLETED"
)

const DefaultFormat = "T20"

var (
	ErrInvalidMatch      = crerr.New("invalid match")
	ErrMatchCompleted    = crerr.New("match already completed")
	ErrOutOfOrder        = crerr.New("delivery out of order")
	ErrInvalidTransition = crerr.New("invalid innings transition")
	ErrVersionConflict   = crerr.New("match version conflict")
	ErrCorruptLog        = crerr.New("delivery log inconsistent with match")
)

// Match is a scheduled two-innings fixture between two teams.
// The innings/status fields are a projection of the delivery log and are
// rewritten in the same unit of work as each accepted delivery.
type Match struct {
	ID                 string
	TeamAID            string
	TeamBID            string
	Venue              string
	Format             string
	ScheduledAt        time.Time
	OversLimit         int
	CurrentInnings     int
	BattingTeamID      string
	FirstInningsTeamID string
	Inning1Complete    bool
	Status             Status
	WinnerTeamID       string
	Tied               bool
	ResultText         string
	CompletedAt        *time.Time
	Version            int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (m Match) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return crerr.Wrap(ErrInvalidMatch, "match id is required")
	}
	if m.TeamAID == "" || m.TeamBID == "" {
		return crerr.Wrap(ErrInvalidMatch, "both teams are required")
	}
	if m.TeamAID == m.TeamBID {
		return crerr.Wrapf(ErrInvalidMatch, "a team cannot play itself: %s", m.TeamAID)
	}
	if m.OversLimit <= 0 {
		return crerr.Wrapf(ErrInvalidMatch, "overs limit must be greater than zero: %d", m.OversLimit)
	}
	if m.CurrentInnings != 1 && m.CurrentInnings != 2 {
		return crerr.Wrapf(ErrInvalidMatch, "current innings must be 1 or 2: %d", m.CurrentInnings)
	}
	if m.BattingTeamID != "" && !m.HasTeam(m.BattingTeamID) {
		return crerr.Wrapf(ErrInvalidMatch, "batting team %s is not playing this match", m.BattingTeamID)
	}
	if m.FirstInningsTeamID != "" && !m.HasTeam(m.FirstInningsTeamID) {
		return crerr.Wrapf(ErrInvalidMatch, "first innings team %s is not playing this match", m.FirstInningsTeamID)
	}
	if m.Inning1Complete && m.BattingTeamID == m.FirstInningsTeamID {
		return crerr.Wrap(ErrInvalidMatch, "second innings must be batted by the other team")
	}
	if m.Status == StatusCompleted && m.WinnerTeamID == "" && !m.Tied {
		return crerr.Wrap(ErrInvalidMatch, "completed match needs a winner or a tie")
	}

	return nil
}

func (m Match) HasTeam(teamID string) bool {
	return teamID != "" && (teamID == m.TeamAID || teamID == m.TeamBID)
}

// OtherTeam returns the opponent of teamID, or "" when teamID is not in the match.
func (m Match) OtherTeam(teamID string) string {
	switch teamID {
	case m.TeamAID:
		return m.TeamBID
	case m.TeamBID:
		return m.TeamAID
	default:
		return ""
	}
}

func (m Match) IsCompleted() bool {
	return m.Status == StatusCompleted
}

// NormalizeFormat upper-cases a format name and falls back to DefaultFormat.
func NormalizeFormat(format string) string {
	value := strings.ToUpper(strings.TrimSpace(format))
	if value == "" {
		return DefaultFormat
	}
	return value
}
