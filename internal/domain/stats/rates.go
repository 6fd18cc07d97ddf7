package stats

import "math"

// Round2 rounds to two decimal places. Only presentation code should call it.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// StrikeRate is runs per hundred balls, 0 when no balls were faced.
func StrikeRate(runs, balls int) float64 {
	if balls <= 0 {
		return 0
	}
	return float64(runs) * 100 / float64(balls)
}

// Economy is runs conceded per six legal balls, 0 when nothing was bowled.
func Economy(runsConceded, legalBalls int) float64 {
	if legalBalls <= 0 {
		return 0
	}
	return float64(runsConceded) * 6 / float64(legalBalls)
}

// RunRate is runs per six legal balls for a team innings.
func RunRate(runs, legalBalls int) float64 {
	return Economy(runs, legalBalls)
}

// Average is runs per dismissal. A player who was never out has no average.
func Average(runs, dismissals int) *float64 {
	if dismissals <= 0 {
		return nil
	}
	v := float64(runs) / float64(dismissals)
	return &v
}

// RoundPtr rounds an optional rate for presentation.
func RoundPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := Round2(*v)
	return &out
}
