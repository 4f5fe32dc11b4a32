package scores

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/plus3/stackfall/progression"
)

// MinRecordScore is the score a game must exceed to enter the leaderboard.
const MinRecordScore = 1000

// TimeLayout is the timestamp format of leaderboard records.
const TimeLayout = "2006-01-02 15:04:05"

// Record is one finished game on the leaderboard.
type Record struct {
	Score      int
	Difficulty string
	Time       time.Time
}

// Qualifies reports whether a game with this score is written to the leaderboard.
func Qualifies(score int) bool {
	return score > MinRecordScore
}

// Query keeps the records whose difficulty equals filter (or every record when
// filter is progression.AllLevels) and that score above MinRecordScore, sorted
// by descending score. Equal scores keep their insertion order. Level names
// in filter are matched regardless of case.
func Query(records []Record, filter string) []Record {
	want, all := canonicalFilter(filter)
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if !Qualifies(r.Score) {
			continue
		}
		if !all && r.Difficulty != want {
			continue
		}
		out = append(out, r)
	}
	slices.SortStableFunc(out, func(a, b Record) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return out
}

// canonicalFilter maps filter to the stored level name, or reports that it
// selects every level.
func canonicalFilter(filter string) (string, bool) {
	filter = strings.TrimSpace(filter)
	if strings.EqualFold(filter, progression.AllLevels) {
		return "", true
	}
	if level, ok := progression.ParseLevelName(filter); ok {
		return progression.LevelName(level), false
	}
	return filter, false
}

// Filters lists the accepted Query filters in display order.
func Filters() []string {
	return append([]string{progression.AllLevels}, progression.LevelNames()...)
}

// WriteTable renders records as an aligned text table with scores grouped
// for the given language.
func WriteTable(w io.Writer, records []Record, tag language.Tag) error {
	p := message.NewPrinter(tag)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "#\tSCORE\tDIFFICULTY\tTIME")
	for i, r := range records {
		p.Fprintf(tw, "%d\t%d\t%s\t%s\n", i+1, r.Score, r.Difficulty, r.Time.Format(TimeLayout))
	}
	return tw.Flush()
}
