// Package final provides types for FIFA World Cup final results.
//
// Each Final is one row of the historical finals table: the year, the two
// teams, the score and where the match was played. A Table holds the rows in
// source order and indexes them by year. Historical country names are folded
// into their modern equivalents with Normalize so that win counts group a
// country's titles together.
package final
