package dashboard

import (
	"bytes"

	"github.com/pfrederiksen/wc-dashboard/internal/dataset"
	"github.com/pfrederiksen/wc-dashboard/internal/final"
	"github.com/pfrederiksen/wc-dashboard/internal/logger"
)

func testDataset() *dataset.Dataset {
	rows := []*final.Final{
		{Year: 1958, Winner: "Brazil", Score: "5–2", RunnerUp: "Sweden", Venue: "Råsunda Stadium", Location: "Solna, Sweden", Attendance: 49737},
		{Year: 1962, Winner: "Brazil", Score: "3–1", RunnerUp: "Czechoslovakia", Venue: "Estadio Nacional", Location: "Santiago, Chile", Attendance: 68679},
		{Year: 1970, Winner: "Brazil", Score: "4–1", RunnerUp: "Italy", Venue: "Estadio Azteca", Location: "Mexico City, Mexico", Attendance: 107412},
		{Year: 1974, Winner: "Germany", Score: "2–1", RunnerUp: "Netherlands", Venue: "Olympiastadion", Location: "Munich, Germany", Attendance: 78200},
		{Year: 1994, Winner: "Brazil", Score: "0–0 (a.e.t.) (3–2 p)", RunnerUp: "Italy", Venue: "Rose Bowl", Location: "Pasadena, United States", Attendance: 94194},
		{Year: 2002, Winner: "Brazil", Score: "2–0", RunnerUp: "Germany", Venue: "International Stadium Yokohama", Location: "Yokohama, Japan", Attendance: 69029},
		{Year: 2006, Winner: "Italy", Score: "1–1 (a.e.t.) (5–3 p)", RunnerUp: "France", Venue: "Olympiastadion", Location: "Berlin, Germany", Attendance: 69000},
	}
	return dataset.New(rows, "https://test.example.com/finals")
}

func quietLogger() *logger.Logger {
	var buf bytes.Buffer
	return logger.New(logger.LevelError, &buf)
}
