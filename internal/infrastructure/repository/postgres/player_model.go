package postgres

import "time"

type playerTableModel struct {
	ID          int64     `db:"id"`
	PublicID    string    `db:"public_id"`
	TeamID      string    `db:"team_public_id"`
	Name        string    `db:"name"`
	Role        string    `db:"role"`
	BattingHand string    `db:"batting_hand"`
	BowlingArm  string    `db:"bowling_arm"`
	ImageURL    string    `db:"image_url"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type playerInsertModel struct {
	PublicID    string `db:"public_id"`
	TeamID      string `db:"team_public_id"`
	Name        string `db:"name"`
	Role        string `db:"role"`
	BattingHand string `db:"batting_hand"`
	BowlingArm  string `db:"bowling_arm"`
	ImageURL    string `db:"image_url"`
}
