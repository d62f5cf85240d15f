package billing

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DailyAggregate is one day of aggregated sales as produced by the backend.
// The backend only emits days that had sales, so a series of these is sparse.
// Date is a plain calendar date in "YYYY-MM-DD" form with no time component.
type DailyAggregate struct {
	Date  string          `json:"_id"`
	Total decimal.Decimal `json:"total"`
}

// NormalizeDailySales fills the gaps in a sparse daily sales series so that
// the result has exactly one entry per calendar day from the earliest to the
// latest date present in the input, inclusive. Days missing from the input
// get a zero total. The input may be unsorted and is never modified.
//
// Dates are parsed and incremented as pure calendar dates in UTC. Parsing in
// the local zone would let a negative offset shift "2024-01-01" onto the
// previous day, which is exactly the artifact this function must not produce.
func NormalizeDailySales(sparse []DailyAggregate) ([]DailyAggregate, error) {
	if len(sparse) == 0 {
		return nil, nil
	}
	totals := make(map[string]decimal.Decimal, len(sparse))
	days := make([]time.Time, 0, len(sparse))
	for _, agg := range sparse {
		day, err := time.ParseInLocation(time.DateOnly, agg.Date, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid aggregate date %q: %w", agg.Date, err)
		}
		days = append(days, day)
		totals[agg.Date] = agg.Total
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	first, last := days[0], days[len(days)-1]
	series := make([]DailyAggregate, 0, int(last.Sub(first).Hours()/24)+1)
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		date := day.Format(time.DateOnly)
		series = append(series, DailyAggregate{Date: date, Total: totals[date]})
	}
	return series, nil
}
