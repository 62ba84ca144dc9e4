package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/epeers/stockalert/internal/models"
	"github.com/epeers/stockalert/internal/series"
	log "github.com/sirupsen/logrus"
)

// Palette colours symbols by watch-list position.
var Palette = []string{
	"#FF6B35", "#4285F4", "#9C27B0", "#FF9800",
	"#4CAF50", "#F44336", "#00BCD4", "#795548",
}

// ColorFor returns the palette colour for a watch-list index.
func ColorFor(index int) string {
	return Palette[index%len(Palette)]
}

// TimeUnit is the x-axis granularity for a timeframe.
func TimeUnit(tf models.Timeframe) string {
	switch tf {
	case models.Timeframe1M:
		return "day"
	case models.Timeframe3M:
		return "week"
	default:
		return "month"
	}
}

// ChartService projects a snapshot into chart datasets.
type ChartService struct{}

// NewChartService creates a new ChartService
func NewChartService() *ChartService {
	return &ChartService{}
}

// Build returns one line dataset per loaded symbol in watch-list order, plus
// volume bars when the price chart has volume enabled. Symbols without data
// in the window are left out.
func (cs *ChartService) Build(ctx context.Context, snap *Snapshot, chart models.ChartSettings, tf models.Timeframe, now time.Time) (*models.ChartResponse, error) {
	resp := &models.ChartResponse{
		Timeframe: tf,
		Type:      chart.Type,
		TimeUnit:  TimeUnit(tf),
		Days:      tf.ApproxDays(),
		Datasets:  []models.ChartDataset{},
	}

	var volumes []models.ChartDataset
	for i, sym := range snap.Symbols {
		qs, ok := snap.Get(sym)
		if !ok {
			continue
		}
		points := series.FilterByTimeframe(qs.Points, tf, now)
		if len(points) == 0 {
			continue
		}
		color := ColorFor(i)

		line, err := lineDataset(sym, color, points, chart.Type)
		if err != nil {
			if errors.Is(err, models.ErrDegenerateBase) {
				log.Warnf("Build: skipping %s: %v", sym, err)
				Warnf(ctx, models.WarnNoWindowData, "%s cannot be shown as percentage change: %v", sym, err)
				continue
			}
			return nil, err
		}
		resp.Datasets = append(resp.Datasets, line)

		if chart.ShowVolume && chart.Type == models.ChartTypePrice {
			volumes = append(volumes, volumeDataset(sym, color, points))
		}
	}
	resp.Datasets = append(resp.Datasets, volumes...)
	return resp, nil
}

func lineDataset(symbol, color string, points []models.PricePoint, chartType models.ChartType) (models.ChartDataset, error) {
	ds := models.ChartDataset{
		Label:  symbol,
		Kind:   "line",
		Color:  color,
		Axis:   "y",
		Points: make([]models.ChartPoint, 0, len(points)),
	}

	if chartType == models.ChartTypePercentage {
		normalized, err := series.Percentage(points)
		if err != nil {
			return ds, fmt.Errorf("%s: %w", symbol, err)
		}
		for _, p := range normalized {
			ds.Points = append(ds.Points, models.ChartPoint{X: p.Date, Y: p.Normalized, Price: p.Price})
		}
		return ds, nil
	}

	for _, p := range points {
		ds.Points = append(ds.Points, models.ChartPoint{X: p.Date, Y: p.Price})
	}
	return ds, nil
}

func volumeDataset(symbol, color string, points []models.PricePoint) models.ChartDataset {
	ds := models.ChartDataset{
		Label:  symbol + " Volume",
		Kind:   "bar",
		Color:  color + "30",
		Axis:   "y1",
		Points: make([]models.ChartPoint, 0, len(points)),
	}
	for _, p := range points {
		ds.Points = append(ds.Points, models.ChartPoint{X: p.Date, Y: float64(p.Volume)})
	}
	return ds
}

// Watchlist builds the sidebar rows for a snapshot.
func (cs *ChartService) Watchlist(snap *Snapshot, triggered []models.TriggeredAlert) *models.WatchlistResponse {
	alerted := make(map[string]bool, len(triggered))
	for _, a := range triggered {
		alerted[a.Symbol] = true
	}

	resp := &models.WatchlistResponse{
		Symbols: snap.Symbols,
		Stocks:  make([]models.WatchlistEntry, 0, len(snap.Symbols)),
	}
	for i, sym := range snap.Symbols {
		entry := models.WatchlistEntry{
			Symbol:   sym,
			Color:    ColorFor(i),
			HasAlert: alerted[sym],
		}
		if qs, ok := snap.Get(sym); ok {
			price, change := qs.CurrentPrice, qs.Change
			entry.Loaded = true
			entry.Name = qs.Name
			entry.CurrentPrice = &price
			entry.Change = &change
		}
		resp.Stocks = append(resp.Stocks, entry)
	}
	return resp
}
