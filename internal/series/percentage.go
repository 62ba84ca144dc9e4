package series

import "github.com/epeers/stockalert/internal/models"

// Percentage rebases points to percent change from the first point. An empty
// input gives an empty output.
func Percentage(points []models.PricePoint) ([]models.NormalizedPoint, error) {
	out := make([]models.NormalizedPoint, 0, len(points))
	if len(points) == 0 {
		return out, nil
	}

	base := points[0].Price
	if base == 0 {
		return nil, models.ErrDegenerateBase
	}

	for _, p := range points {
		out = append(out, models.NormalizedPoint{
			Date:       p.Date,
			Price:      p.Price,
			Normalized: (p.Price - base) / base * 100,
		})
	}
	return out, nil
}
