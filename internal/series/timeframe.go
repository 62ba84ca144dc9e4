package series

import (
	"time"

	"github.com/epeers/stockalert/internal/models"
)

// StartDate is the first calendar day inside tf when looking back from now.
// Windows are counted in calendar months (1Y = 12 months) with AddDate
// overflow rules: three months before 31 May is 3 March (2 March in a leap year).
func StartDate(tf models.Timeframe, now time.Time) models.Day {
	return models.NewDay(now.UTC().AddDate(0, -tf.Months(), 0))
}

// FilterByTimeframe returns the points dated on or after StartDate(tf, now).
// The result is a new slice and may be empty; the input is never modified.
func FilterByTimeframe(points []models.PricePoint, tf models.Timeframe, now time.Time) []models.PricePoint {
	start := StartDate(tf, now)

	out := make([]models.PricePoint, 0, len(points))
	for _, p := range points {
		if !p.Date.Before(start) {
			out = append(out, p)
		}
	}
	return out
}
