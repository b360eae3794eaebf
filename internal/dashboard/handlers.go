package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pfrederiksen/wc-dashboard/internal/dataset"
	"github.com/pfrederiksen/wc-dashboard/internal/figure"
	"github.com/pfrederiksen/wc-dashboard/internal/final"
)

// Component ids shared by the layout and the callbacks
const (
	YearDropdown    = "year-dropdown"
	MapGraph        = "map"
	CountryDropdown = "country-dropdown"
	WinsDisplay     = "numWins-display"
)

// Handlers computes dashboard outputs from an immutable dataset
type Handlers struct {
	data *dataset.Dataset
}

// NewHandlers creates handlers over ds
func NewHandlers(ds *dataset.Dataset) *Handlers {
	return &Handlers{data: ds}
}

// Map returns the world map for year. With no year every title-winning
// country is shaded by its number of wins; with a year only that final's
// winner and runner-up are shown, colored by role.
func (h *Handlers) Map(year *int) (figure.Figure, error) {
	if year == nil {
		rows := h.data.Wins.Rows()
		regions := make([]figure.Region, 0, len(rows))
		for _, r := range rows {
			regions = append(regions, figure.Region{Location: r.Country, Value: float64(r.Wins)})
		}
		return figure.Continuous("All World Cup Winners", "Wins", regions), nil
	}

	f, err := h.data.Finals.ByYear(*year)
	if err != nil {
		return figure.Figure{}, err
	}

	teams := f.Teams()
	regions := make([]figure.CategoryRegion, 0, len(teams))
	for _, team := range teams {
		regions = append(regions, figure.CategoryRegion{Location: team.Country, Category: string(team.Role)})
	}
	return figure.Categorical(fmt.Sprintf("%d FIFA World Cup Finals", *year), "Result", regions), nil
}

// WinCount returns the number of titles won by country as a decimal string,
// or "" when no country is selected.
func (h *Handlers) WinCount(country *string) (string, error) {
	if country == nil {
		return "", nil
	}
	wins, err := h.data.Wins.Wins(*country)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(wins), nil
}

// Register binds the year selector to the map and the country selector to
// the win-count display.
func (h *Handlers) Register(reg *Registry) error {
	err := reg.Register(
		Dependency{ID: YearDropdown, Property: "value"},
		Dependency{ID: MapGraph, Property: "figure"},
		func(value json.RawMessage) (interface{}, error) {
			year, err := decodeYear(value)
			if err != nil {
				return nil, err
			}
			return h.Map(year)
		},
	)
	if err != nil {
		return err
	}

	return reg.Register(
		Dependency{ID: CountryDropdown, Property: "value"},
		Dependency{ID: WinsDisplay, Property: "value"},
		func(value json.RawMessage) (interface{}, error) {
			country, err := decodeString(value)
			if err != nil {
				return nil, err
			}
			return h.WinCount(country)
		},
	)
}

// decodeYear accepts null, a JSON number or a numeric string. Empty
// strings count as no selection since that is what a cleared <select> sends.
func decodeYear(value json.RawMessage) (*int, error) {
	if isNull(value) {
		return nil, nil
	}

	var n int
	if err := json.Unmarshal(value, &n); err == nil {
		return &n, nil
	}

	s, err := decodeString(value)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	n, err = final.ParseYear(*s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return &n, nil
}

// decodeString accepts null or a JSON string; blank strings are no selection
func decodeString(value json.RawMessage) (*string, error) {
	if isNull(value) {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidValue, string(value))
	}
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	return &s, nil
}

func isNull(value json.RawMessage) bool {
	trimmed := bytes.TrimSpace(value)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
