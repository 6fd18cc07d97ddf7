package memory

import (
	"github.com/riskibarqy/cricket-scorer/internal/domain/player"
	"github.com/riskibarqy/cricket-scorer/internal/domain/team"
)

const (
	TeamIDMumbai  = "mum-indians"
	TeamIDChennai = "che-kings"
)

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: TeamIDMumbai, Name: "Mumbai Indians", Short: "MI"},
		{ID: TeamIDChennai, Name: "Chennai Kings", Short: "CSK"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "mi-01", TeamID: TeamIDMumbai, Name: "Rohan Sharma", Role: player.RoleBatter, BattingHand: "right"},
		{ID: "mi-02", TeamID: TeamIDMumbai, Name: "Ishan Kapoor", Role: player.RoleWicketKeeper, BattingHand: "left"},
		{ID: "mi-03", TeamID: TeamIDMumbai, Name: "Surya Yadav", Role: player.RoleBatter, BattingHand: "right"},
		{ID: "mi-04", TeamID: TeamIDMumbai, Name: "Tilak Varma", Role: player.RoleBatter, BattingHand: "left"},
		{ID: "mi-05", TeamID: TeamIDMumbai, Name: "Hardik Pandey", Role: player.RoleAllRounder, BattingHand: "right", BowlingArm: "right-fast-medium"},
		{ID: "mi-06", TeamID: TeamIDMumbai, Name: "Tim Daniels", Role: player.RoleAllRounder, BattingHand: "right", BowlingArm: "right-medium"},
		{ID: "mi-07", TeamID: TeamIDMumbai, Name: "Krunal Desai", Role: player.RoleAllRounder, BattingHand: "left", BowlingArm: "left-orthodox"},
		{ID: "mi-08", TeamID: TeamIDMumbai, Name: "Piyush Chandra", Role: player.RoleBowler, BattingHand: "right", BowlingArm: "right-legbreak"},
		{ID: "mi-09", TeamID: TeamIDMumbai, Name: "Jasprit Bhatt", Role: player.RoleBowler, BattingHand: "right", BowlingArm: "right-fast"},
		{ID: "mi-10", TeamID: TeamIDMumbai, Name: "Trent Bolton", Role: player.RoleBowler, BattingHand: "right", BowlingArm: "left-fast"},
		{ID: "mi-11", TeamID: TeamIDMumbai, Name: "Akash Madhav", Role: player.RoleBowler, BattingHand: "right", BowlingArm: "right-fast-medium"},
		{ID: "csk-01", TeamID: TeamIDChennai, Name: "Ruturaj Gaikar", Role: player.RoleBatter, BattingHand: "right"},
		{ID: "csk-02", TeamID: TeamIDChennai, Name: "Devon Conroy", Role: player.RoleBatter, BattingHand: "left"},
		{ID: "csk-03", TeamID: TeamIDChennai, Name: "Ajinkya Rane", Role: player.RoleBatter, BattingHand: "right"},
		{ID: "csk-04", TeamID: TeamIDChennai, Name: "Shivam Dubey", Role: player.RoleAllRounder, BattingHand: "left", BowlingArm: "right-medium"},
		{ID: "csk-05", TeamID: TeamIDChennai, Name: "Ravindra Jadhav", Role: player.RoleAllRounder, BattingHand: "left", BowlingArm: "left-orthodox"},
		{ID: "csk-06", TeamID: TeamIDChennai, Name: "Moeen Khan", Role: player.RoleAllRounder, BattingHand: "left", BowlingArm: "right-offbreak"},
		{ID: "csk-07", TeamID: TeamIDChennai, Name: "Mahendra Dhanraj", Role: player.RoleWicketKeeper, BattingHand: "right"},
		{ID: "csk-08", TeamID: TeamIDChennai, Name: "Deepak Chauhan", Role: player.RoleBowler, BattingHand: "right", BowlingArm: "right-medium"},
		{ID: "csk-09", TeamID: TeamIDChennai, Name: "Tushar Deshmukh", Role: player.RoleBowler, BattingHand: "right", BowlingArm: "right-fast-medium"},
		{ID: "csk-10", TeamID: TeamIDChennai, Name: "Maheesh Theeksha", Role: player.RoleBowler, BattingHand: "right", BowlingArm: "right-offbreak"},
		{ID: "csk-11", TeamID: TeamIDChennai, Name: "Matheesha Pathiran", Role: player.RoleBowler, BattingHand: "right", BowlingArm: "right-fast"},
	}
}
