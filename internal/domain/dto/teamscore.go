package dto

// TeamScore is one leaderboard row: a team with the arithmetic mean of its
// evaluation scores. Evaluations is zero for teams nobody has scored yet.
type TeamScore struct {
	TeamID      uint
	TeamName    string
	Mean        float64
	Evaluations int
}
