package team

import "fmt"

// Team is a side that can be scheduled into a match.
type Team struct {
	ID    string
	Name  string
	Short string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// DisplayName prefers the short code when the full name is missing.
func (t Team) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	if t.Short != "" {
		return t.Short
	}
	return t.ID
}
