package reports

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"time"
)

const monthKeyLayout = "2006-01"

var monthKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// monthKey buckets a timestamp into its calendar month. A zero timestamp
// falls back to the provided clock value instead of dropping the record;
// the bucket placement is then approximate. All bucketing runs in UTC so
// revenue never shifts between months on interpretation differences.
func monthKey(t, fallback time.Time) string {
	if t.IsZero() {
		t = fallback
	}
	return t.UTC().Format(monthKeyLayout)
}

// sortedMonths returns the distinct keys in ascending order. Lexicographic
// order is chronological for the YYYY-MM key format.
func sortedMonths(set map[string]struct{}) []string {
	months := make([]string, 0, len(set))
	for key := range set {
		months = append(months, key)
	}
	sort.Strings(months)
	return months
}

func parseMonth(key string) (time.Time, error) {
	if !monthKeyPattern.MatchString(key) {
		return time.Time{}, fmt.Errorf("reports: invalid month key %q", key)
	}
	t, err := time.ParseInLocation(monthKeyLayout, key, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}

func formatMonth(t time.Time) string {
	return t.Format(monthKeyLayout)
}

// shiftMonth advances a month key by k calendar months.
func shiftMonth(key string, k int) string {
	t, err := parseMonth(key)
	if err != nil {
		return key
	}
	return formatMonth(t.AddDate(0, k, 0))
}

func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}
