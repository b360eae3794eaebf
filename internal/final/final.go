package final

import (
	"fmt"
	"strconv"
	"strings"
)

// Role tags a team's result in a final
type Role string

const (
	RoleWinner   Role = "Winner"
	RoleRunnerUp Role = "Runner-up"
)

// Final represents a single World Cup final
type Final struct {
	Year       int    `json:"year"`
	Winner     string `json:"winner"`
	Score      string `json:"score"`
	RunnerUp   string `json:"runner_up"`
	Venue      string `json:"venue"`
	Location   string `json:"location"`
	Attendance int    `json:"attendance"`
}

// Team pairs a country with the role it finished in
type Team struct {
	Country string `json:"country"`
	Role    Role   `json:"role"`
}

// Teams returns the winner and runner-up, in that order
func (f *Final) Teams() []Team {
	return []Team{
		{Country: f.Winner, Role: RoleWinner},
		{Country: f.RunnerUp, Role: RoleRunnerUp},
	}
}

// String renders the final as a single line
func (f *Final) String() string {
	return fmt.Sprintf("%d: %s %s %s (%s, %s)", f.Year, f.Winner, f.Score, f.RunnerUp, f.Venue, f.Location)
}

// ParseYear parses a year cell such as "1930" or "2022".
func ParseYear(text string) (int, error) {
	text = strings.TrimSpace(text)
	if len(text) != 4 {
		return 0, fmt.Errorf("invalid year: %q", text)
	}
	year, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("invalid year: %q", text)
	}
	return year, nil
}

// ParseAttendance parses an attendance cell like "173,850".
// Cells without a number yield 0.
func ParseAttendance(text string) int {
	cleaned := strings.NewReplacer(",", "", ".", "", " ", "").Replace(strings.TrimSpace(text))
	n, err := strconv.Atoi(cleaned)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
