package dashboard

import (
	"strconv"

	"github.com/pfrederiksen/wc-dashboard/internal/dataset"
)

// Kind is the type of a layout component
type Kind string

const (
	KindDiv      Kind = "div"
	KindH1       Kind = "h1"
	KindH3       Kind = "h3"
	KindDropdown Kind = "dropdown"
	KindGraph    Kind = "graph"
	KindTextarea Kind = "textarea"
)

// Component is a node in the page's widget tree
type Component struct {
	Kind     Kind
	ID       string
	Text     string
	Style    string
	ReadOnly bool
	Options  []Option
	Children []*Component
}

// Option is one dropdown entry
type Option struct {
	Label string
	Value string
}

// NewLayout declares the dashboard's widget tree. Selector options come
// from the same tables the callbacks read, so every selectable value has
// a matching row.
func NewLayout(ds *dataset.Dataset) *Component {
	years := ds.Finals.Years()
	yearOptions := make([]Option, 0, len(years))
	for _, y := range years {
		v := strconv.Itoa(y)
		yearOptions = append(yearOptions, Option{Label: v, Value: v})
	}

	countries := ds.Wins.Countries()
	countryOptions := make([]Option, 0, len(countries))
	for _, c := range countries {
		countryOptions = append(countryOptions, Option{Label: c, Value: c})
	}

	return &Component{
		Kind: KindDiv,
		Children: []*Component{
			{Kind: KindH1, Text: "FIFA World Cup Dashboard", Style: "text-align: center"},
			{
				Kind: KindDiv,
				Children: []*Component{
					{
						Kind:  KindDiv,
						Style: "width: 100%; display: inline-block",
						Children: []*Component{
							{Kind: KindH3, Text: "World Cup Year (No selection to see all winners)"},
							{Kind: KindDropdown, ID: YearDropdown, Options: yearOptions},
							{Kind: KindGraph, ID: MapGraph},
						},
					},
				},
			},
			{
				Kind:  KindDiv,
				Style: "width: 250px",
				Children: []*Component{
					{Kind: KindH3, Text: "Countries"},
					{Kind: KindDropdown, ID: CountryDropdown, Options: countryOptions},
				},
			},
			{
				Kind:  KindDiv,
				Style: "width: 250px",
				Children: []*Component{
					{Kind: KindH3, Text: "Number of World Cup titles"},
					{Kind: KindTextarea, ID: WinsDisplay, ReadOnly: true, Style: "margin: auto; text-align: center"},
				},
			},
		},
	}
}

// Find returns the component with id, or nil
func (c *Component) Find(id string) *Component {
	if c == nil {
		return nil
	}
	if c.ID == id {
		return c
	}
	for _, child := range c.Children {
		if found := child.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// IDs returns the ids of every component in the tree, depth first
func (c *Component) IDs() []string {
	var ids []string
	var walk func(*Component)
	walk = func(n *Component) {
		if n.ID != "" {
			ids = append(ids, n.ID)
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(c)
	return ids
}
