package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/wc-dashboard/internal/final"
)

const (
	FinalsURL         = "https://en.wikipedia.org/wiki/List_of_FIFA_World_Cup_finals"
	UserAgent         = "wc-dashboard/1.0 (github.com/pfrederiksen/wc-dashboard)"
	Timeout           = 30 * time.Second
	DefaultTableIndex = 3
)

// Columns is the header layout the finals table must have
var Columns = []string{"Year", "Winners", "Score", "Runners-up", "Venue", "Location", "Attendance", "Ref."}

var (
	// ErrTableNotFound is returned when the page has fewer tables than expected
	ErrTableNotFound = errors.New("finals table not found")
	// ErrUnexpectedLayout is returned when the table header does not match Columns
	ErrUnexpectedLayout = errors.New("unexpected finals table layout")
)

// footnotePattern matches citation markers such as "[1]" or "[n 3]"
var footnotePattern = regexp.MustCompile(`\[[^\]]*\]`)

// resultPattern matches a played score such as "4–2" or "1-0 (a.e.t.)"
var resultPattern = regexp.MustCompile(`^\d+\s*[–-]\s*\d+`)

// Config controls where and how the finals page is fetched.
// Zero values fall back to the package defaults.
type Config struct {
	URL        string
	UserAgent  string
	Timeout    time.Duration
	TableIndex int
}

// Scraper handles fetching and parsing the World Cup finals page
type Scraper struct {
	client     *http.Client
	url        string
	userAgent  string
	tableIndex int
}

// New creates a new Scraper instance
func New() *Scraper {
	return NewWithConfig(Config{TableIndex: DefaultTableIndex})
}

// NewWithConfig creates a Scraper from cfg
func NewWithConfig(cfg Config) *Scraper {
	if cfg.URL == "" {
		cfg.URL = FinalsURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = UserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = Timeout
	}
	if cfg.TableIndex < 0 {
		cfg.TableIndex = DefaultTableIndex
	}
	return &Scraper{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		url:        cfg.URL,
		userAgent:  cfg.UserAgent,
		tableIndex: cfg.TableIndex,
	}
}

// URL returns the page the scraper reads from
func (s *Scraper) URL() string {
	return s.url
}

// FetchFinals fetches the finals page and parses the finals table
func (s *Scraper) FetchFinals(ctx context.Context) ([]*final.Final, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return s.parseFinals(resp.Body)
}

// parseFinals extracts the finals rows from HTML
func (s *Scraper) parseFinals(r io.Reader) ([]*final.Final, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	tables := doc.Find("table")
	if s.tableIndex >= tables.Length() {
		return nil, fmt.Errorf("%w: page has %d tables, want index %d", ErrTableNotFound, tables.Length(), s.tableIndex)
	}
	table := tables.Eq(s.tableIndex)

	// Citations and hidden sort keys would leak into the cell text
	table.Find("sup.reference, .sortkey, [style*='display:none']").Remove()

	rows := table.Find("tr")
	header := headerCells(rows)
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	finals := make([]*final.Final, 0, rows.Length())
	rows.Each(func(i int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("th, td")
		if cells.Length() < len(Columns)-1 || cells.Filter("td").Length() == 0 {
			return
		}

		texts := make([]string, cells.Length())
		cells.Each(func(j int, cell *goquery.Selection) {
			texts[j] = cleanText(cell.Text())
		})

		year, err := final.ParseYear(texts[0])
		if err != nil {
			return
		}
		// Scheduled finals carry a match label instead of a result
		if !hasResult(texts[2]) {
			return
		}

		finals = append(finals, &final.Final{
			Year:       year,
			Winner:     texts[1],
			Score:      texts[2],
			RunnerUp:   texts[3],
			Venue:      texts[4],
			Location:   texts[5],
			Attendance: final.ParseAttendance(texts[6]),
		})
	})

	return finals, nil
}

// hasResult reports whether score holds a played result
func hasResult(score string) bool {
	return resultPattern.MatchString(score)
}

// headerCells returns the cleaned text of the first all-header row
func headerCells(rows *goquery.Selection) []string {
	var header []string
	rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := row.ChildrenFiltered("th, td")
		if cells.Length() == 0 || cells.Filter("td").Length() > 0 {
			return true
		}
		cells.Each(func(j int, cell *goquery.Selection) {
			header = append(header, cleanText(cell.Text()))
		})
		return false
	})
	return header
}

func checkHeader(header []string) error {
	if len(header) != len(Columns) {
		return fmt.Errorf("%w: got columns %q", ErrUnexpectedLayout, header)
	}
	for i, col := range Columns {
		if header[i] != col {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrUnexpectedLayout, i, header[i], col)
		}
	}
	return nil
}

// cleanText strips footnote markers and collapses whitespace
func cleanText(text string) string {
	text = footnotePattern.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "\u00a0", " ")
	return strings.Join(strings.Fields(text), " ")
}
