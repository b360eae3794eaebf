// Package scraper provides HTTP fetching and HTML parsing for the FIFA World Cup finals table.
//
// The scraper package fetches the public list of World Cup finals and extracts one
// final.Final per played final. The table is located by position and its header is
// checked against the expected column layout; a page whose layout has drifted is
// rejected with ErrUnexpectedLayout rather than parsed on a best-effort basis.
package scraper
