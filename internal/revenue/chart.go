package revenue

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
)

// RenderChart draws total deal value per salesman as a PNG bar chart.
func RenderChart(t Treasury) ([]byte, error) {
	bars := make([]chart.Value, 0, len(t.Salesmen))
	maxVal := 0.0
	for _, s := range t.Salesmen {
		if s.TotalValue > maxVal {
			maxVal = s.TotalValue
		}
		bars = append(bars, chart.Value{Value: s.TotalValue, Label: s.Name})
	}
	if len(bars) == 0 {
		bars = append(bars, chart.Value{Value: 0, Label: "No deals"})
	}
	// go-chart rejects an empty value range.
	if maxVal <= 0 {
		maxVal = 1
	}

	graph := chart.BarChart{
		Title:    fmt.Sprintf("Total deal value (%s)", t.Window),
		Width:    1100,
		Height:   600,
		BarWidth: 56,
		Background: chart.Style{Padding: chart.Box{
			Top:    50,
			Left:   16,
			Right:  16,
			Bottom: 0,
		}},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxVal * 1.1},
			ValueFormatter: func(v any) string {
				if f, ok := v.(float64); ok {
					return FormatEUR(f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	buf := bytes.NewBuffer(nil)
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}
