package report

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/yurifrl/burnrate/pkg/models"
)

// RenderChart draws monthly spend as a PNG line chart.
func RenderChart(w io.Writer, buckets []models.MonthBucket) error {
	if len(buckets) == 0 {
		return fmt.Errorf("no months to chart")
	}

	xs := make([]float64, len(buckets))
	ys := make([]float64, len(buckets))
	ticks := make([]chart.Tick, len(buckets))
	maxY := 0.0
	for i, b := range buckets {
		xs[i] = float64(i)
		ys[i] = b.Spend.InexactFloat64()
		ticks[i] = chart.Tick{Value: float64(i), Label: b.Month.String()[:3]}
		maxY = math.Max(maxY, ys[i])
	}
	if maxY == 0 {
		maxY = 1
	}

	graph := chart.Chart{
		Width:  960,
		Height: 400,
		XAxis: chart.XAxis{
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0, Max: math.Max(1, float64(len(buckets)-1))},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxY * 1.1},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Monthly spend",
				XValues: xs,
				YValues: ys,
			},
		},
	}
	return graph.Render(chart.PNG, w)
}

// WriteChart renders the chart to path.
func WriteChart(path string, buckets []models.MonthBucket) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOutputIO, err)
	}
	defer f.Close()

	if err := RenderChart(f, buckets); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return f.Close()
}
