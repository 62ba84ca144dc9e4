// Package series holds the pure transforms over daily price series: provider
// normalization, trailing-window filtering and percentage rebasing.
package series

import (
	"fmt"

	"github.com/epeers/stockalert/internal/models"
)

// Normalize zips the provider's parallel arrays into an ordered QuoteSeries.
// Days without a close are dropped; a missing volume counts as zero. Order is
// kept as given (the provider returns ascending timestamps). Bars that fall on
// the same calendar day collapse into one point; the latest bar wins.
func Normalize(raw *models.RawSeries) (*models.QuoteSeries, error) {
	points := make([]models.PricePoint, 0, len(raw.Timestamps))
	for i, ts := range raw.Timestamps {
		if i >= len(raw.Closes) || raw.Closes[i] == nil {
			continue
		}

		var volume int64
		if i < len(raw.Volumes) && raw.Volumes[i] != nil {
			volume = *raw.Volumes[i]
		}

		p := models.PricePoint{
			Date:   models.DayFromUnix(ts),
			Price:  *raw.Closes[i],
			Volume: volume,
		}
		if last := len(points) - 1; last >= 0 && points[last].Date == p.Date {
			points[last] = p
			continue
		}
		points = append(points, p)
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("%s: %w", raw.Symbol, models.ErrEmptySeries)
	}

	name := raw.Name
	if name == "" {
		name = raw.Symbol
	}

	return &models.QuoteSeries{
		Symbol:       raw.Symbol,
		Name:         name,
		Points:       points,
		CurrentPrice: points[len(points)-1].Price,
		Change:       DayChange(points),
	}, nil
}

// DayChange is the percent move between the last two points, or 0 when there
// are fewer than two (or the earlier price is zero).
func DayChange(points []models.PricePoint) float64 {
	if len(points) < 2 {
		return 0
	}
	last := points[len(points)-1].Price
	prev := points[len(points)-2].Price
	if prev == 0 {
		return 0
	}
	return (last - prev) / prev * 100
}
