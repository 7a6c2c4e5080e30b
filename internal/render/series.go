package render

import (
	"fmt"
	"io"
	"os"

	"github.com/guptarohit/asciigraph"
	"github.com/wcharczuk/go-chart/v2"
)

// SeriesChart renders one or more time series as a PNG line chart.
func SeriesChart(w io.Writer, title, xLabel, yLabel string, times []float64, series map[string][]float64) error {
	if len(series) == 0 {
		return fmt.Errorf("render: no series")
	}

	var cs []chart.Series
	for name, values := range series {
		if len(values) != len(times) {
			return fmt.Errorf("render: series %q has %d values for %d times", name, len(values), len(times))
		}
		cs = append(cs, chart.ContinuousSeries{
			Name:    name,
			XValues: times,
			YValues: values,
		})
	}

	graph := chart.Chart{
		Title:  title,
		Width:  900,
		Height: 420,
		XAxis: chart.XAxis{
			Name: xLabel,
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.2f", v.(float64))
			},
		},
		YAxis: chart.YAxis{
			Name: yLabel,
		},
		Series: cs,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}

// SeriesChartFile renders a line chart to a file path.
func SeriesChartFile(path, title, xLabel, yLabel string, times []float64, series map[string][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := SeriesChart(f, title, xLabel, yLabel, times, series); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// AsciiSeries plots values as a terminal graph.
func AsciiSeries(values []float64, caption string) string {
	return asciigraph.Plot(values,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}
