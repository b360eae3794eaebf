// Package figure builds choropleth map figures.
//
// Figures serialize to the JSON shape Plotly.js accepts ({"data": [...],
// "layout": {...}}), so the page can hand them to Plotly.react unchanged.
// Continuous figures shade every region on one color scale; categorical
// figures emit one trace per category so each category gets its own color
// and legend entry.
package figure

import "fmt"

const (
	TraceChoropleth   = "choropleth"
	LocationNames     = "country names"
	ProjectionNatural = "natural earth"
	ContinuousScale   = "Plasma"
)

// Palette is the qualitative color sequence assigned to categories in order
var Palette = []string{"#636efa", "#EF553B", "#00cc96", "#ab63fa", "#FFA15A", "#19d3f3"}

// Figure is a renderable map figure
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one choropleth layer
type Trace struct {
	Type          string      `json:"type"`
	Name          string      `json:"name,omitempty"`
	LegendGroup   string      `json:"legendgroup,omitempty"`
	Locations     []string    `json:"locations"`
	LocationMode  string      `json:"locationmode"`
	Z             []float64   `json:"z"`
	Text          []string    `json:"text,omitempty"`
	HoverTemplate string      `json:"hovertemplate"`
	ColorScale    interface{} `json:"colorscale"`
	ShowScale     bool        `json:"showscale"`
	ShowLegend    bool        `json:"showlegend"`
	ColorBar      *ColorBar   `json:"colorbar,omitempty"`
}

// ColorBar labels a continuous color scale
type ColorBar struct {
	Title Title `json:"title"`
}

// Title is a text title
type Title struct {
	Text string `json:"text"`
}

// Layout holds figure-level settings
type Layout struct {
	Title  Title  `json:"title"`
	Geo    Geo    `json:"geo"`
	Legend Legend `json:"legend"`
	Margin Margin `json:"margin"`
}

// Geo configures the map
type Geo struct {
	Projection     Projection `json:"projection"`
	ShowFrame      bool       `json:"showframe"`
	ShowCoastlines bool       `json:"showcoastlines"`
}

// Projection names the map projection
type Projection struct {
	Type string `json:"type"`
}

// Legend configures the category legend
type Legend struct {
	Title Title `json:"title"`
}

// Margin is the plot margin in pixels
type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// Region is a location with a numeric value
type Region struct {
	Location string
	Value    float64
}

// CategoryRegion is a location tagged with a category
type CategoryRegion struct {
	Location string
	Category string
}

func newLayout(title string) Layout {
	return Layout{
		Title: Title{Text: title},
		Geo: Geo{
			Projection:     Projection{Type: ProjectionNatural},
			ShowCoastlines: true,
		},
		Margin: Margin{L: 0, R: 0, T: 50, B: 0},
	}
}

// Continuous shades each region by its value. label names the value in the
// tooltip and on the color bar.
func Continuous(title, label string, regions []Region) Figure {
	trace := Trace{
		Type:          TraceChoropleth,
		Locations:     make([]string, 0, len(regions)),
		LocationMode:  LocationNames,
		Z:             make([]float64, 0, len(regions)),
		HoverTemplate: fmt.Sprintf("<b>%%{location}</b><br>%s=%%{z}<extra></extra>", label),
		ColorScale:    ContinuousScale,
		ShowScale:     true,
		ColorBar:      &ColorBar{Title: Title{Text: label}},
	}
	for _, r := range regions {
		trace.Locations = append(trace.Locations, r.Location)
		trace.Z = append(trace.Z, r.Value)
	}

	return Figure{
		Data:   []Trace{trace},
		Layout: newLayout(title),
	}
}

// Categorical colors each region by its category, one trace per category
// in order of first appearance. label names the category in the tooltip.
func Categorical(title, label string, regions []CategoryRegion) Figure {
	order := make([]string, 0)
	byCategory := make(map[string]*Trace)

	for _, r := range regions {
		trace, ok := byCategory[r.Category]
		if !ok {
			color := Palette[len(order)%len(Palette)]
			trace = &Trace{
				Type:          TraceChoropleth,
				Name:          r.Category,
				LegendGroup:   r.Category,
				LocationMode:  LocationNames,
				HoverTemplate: fmt.Sprintf("<b>%%{location}</b><br>%s=%%{text}<extra></extra>", label),
				ColorScale:    [][2]interface{}{{0, color}, {1, color}},
				ShowLegend:    true,
			}
			byCategory[r.Category] = trace
			order = append(order, r.Category)
		}
		trace.Locations = append(trace.Locations, r.Location)
		trace.Z = append(trace.Z, 1)
		trace.Text = append(trace.Text, r.Category)
	}

	fig := Figure{
		Data:   make([]Trace, 0, len(order)),
		Layout: newLayout(title),
	}
	fig.Layout.Legend = Legend{Title: Title{Text: label}}
	for _, category := range order {
		fig.Data = append(fig.Data, *byCategory[category])
	}
	return fig
}

// Locations returns every location across all traces
func (f Figure) Locations() []string {
	var out []string
	for _, t := range f.Data {
		out = append(out, t.Locations...)
	}
	return out
}

// CategoryOf returns the category trace a location belongs to, or "" when
// the location is absent or the figure is continuous.
func (f Figure) CategoryOf(location string) string {
	for _, t := range f.Data {
		for _, loc := range t.Locations {
			if loc == location {
				return t.Name
			}
		}
	}
	return ""
}
