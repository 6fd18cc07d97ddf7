package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/cricket-scorer/internal/domain/match"
)

type matchTableModel struct {
	ID                 int64        `db:"id"`
	PublicID           string       `db:"public_id"`
	TeamAID            string       `db:"team_a_public_id"`
	TeamBID            string       `db:"team_b_public_id"`
	Venue              string       `db:"venue"`
	Format             string       `db:"format"`
	ScheduledAt        time.Time    `db:"scheduled_at"`
	OversLimit         int          `db:"overs_limit"`
	CurrentInnings     int          `db:"current_innings"`
	BattingTeamID      string       `db:"batting_team_public_id"`
	FirstInningsTeamID string       `db:"first_innings_team_public_id"`
	Inning1Complete    bool         `db:"inning1_complete"`
	Status             string       `db:"status"`
	WinnerTeamID       string       `db:"winner_team_public_id"`
	Tied               bool         `db:"tied"`
	ResultText         string       `db:"result_text"`
	CompletedAt        sql.NullTime `db:"completed_at"`
	Version            int64        `db:"version"`
	CreatedAt          time.Time    `db:"created_at"`
	UpdatedAt          time.Time    `db:"updated_at"`
}

type matchInsertModel struct {
	PublicID           string       `db:"public_id"`
	TeamAID            string       `db:"team_a_public_id"`
	TeamBID            string       `db:"team_b_public_id"`
	Venue              string       `db:"venue"`
	Format             string       `db:"format"`
	ScheduledAt        time.Time    `db:"scheduled_at"`
	OversLimit         int          `db:"overs_limit"`
	CurrentInnings     int          `db:"current_innings"`
	BattingTeamID      string       `db:"batting_team_public_id"`
	FirstInningsTeamID string       `db:"first_innings_team_public_id"`
	Inning1Complete    bool         `db:"inning1_complete"`
	Status             string       `db:"status"`
	WinnerTeamID       string       `db:"winner_team_public_id"`
	Tied               bool         `db:"tied"`
	ResultText         string       `db:"result_text"`
	CompletedAt        sql.NullTime `db:"completed_at"`
	Version            int64        `db:"version"`
	CreatedAt          time.Time    `db:"created_at"`
	UpdatedAt          time.Time    `db:"updated_at"`
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:                 row.PublicID,
		TeamAID:            row.TeamAID,
		TeamBID:            row.TeamBID,
		Venue:              row.Venue,
		Format:             row.Format,
		ScheduledAt:        row.ScheduledAt,
		OversLimit:         row.OversLimit,
		CurrentInnings:     row.CurrentInnings,
		BattingTeamID:      row.BattingTeamID,
		FirstInningsTeamID: row.FirstInningsTeamID,
		Inning1Complete:    row.Inning1Complete,
		Status:             match.Status(row.Status),
		WinnerTeamID:       row.WinnerTeamID,
		Tied:               row.Tied,
		ResultText:         row.ResultText,
		CompletedAt:        nullTime(row.CompletedAt),
		Version:            row.Version,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
}

func matchInsertFromDomain(m match.Match) matchInsertModel {
	return matchInsertModel{
		PublicID:           m.ID,
		TeamAID:            m.TeamAID,
		TeamBID:            m.TeamBID,
		Venue:              m.Venue,
		Format:             m.Format,
		ScheduledAt:        m.ScheduledAt,
		OversLimit:         m.OversLimit,
		CurrentInnings:     m.CurrentInnings,
		BattingTeamID:      m.BattingTeamID,
		FirstInningsTeamID: m.FirstInningsTeamID,
		Inning1Complete:    m.Inning1Complete,
		Status:             string(m.Status),
		WinnerTeamID:       m.WinnerTeamID,
		Tied:               m.Tied,
		ResultText:         m.ResultText,
		CompletedAt:        toNullTime(m.CompletedAt),
		Version:            m.Version,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
