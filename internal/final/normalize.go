package final

// Aliases maps historical names to the name used for grouping.
// Replacement is by exact cell value.
var Aliases = map[string]string{
	"West Germany":         "Germany",
	"Munich, West Germany": "Munich, Germany",
}

// Normalize replaces aliased names in the winner, runner-up and location
// columns. It returns the number of cells changed.
func Normalize(finals []*Final) int {
	changed := 0
	for _, f := range finals {
		for _, cell := range []*string{&f.Winner, &f.RunnerUp, &f.Location} {
			if replacement, ok := Aliases[*cell]; ok {
				*cell = replacement
				changed++
			}
		}
	}
	return changed
}
