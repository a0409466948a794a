package analytics

// ChartData is the chart-ready series format consumed by the presentation
// layer.
type ChartData struct {
	Type   string        `json:"type"` // "line", "bar", "pie"
	Labels []string      `json:"labels"`
	Data   []ChartSeries `json:"data"`
}

// ChartSeries is one named data series in a chart.
type ChartSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
	Color  string    `json:"color,omitempty"`
}

// PieChartData is the single-ring chart format used for distributions.
type PieChartData struct {
	Type   string    `json:"type"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// ToLineChart renders the purchases-vs-sales series as one multi-series line
// chart so both stay directly comparable on the shared x-axis.
func (ts TimeSeries) ToLineChart() ChartData {
	return ChartData{
		Type:   "line",
		Labels: ts.Labels,
		Data: []ChartSeries{
			{Name: "Sales", Values: ts.Sales},
			{Name: "Purchases", Values: ts.Purchases},
		},
	}
}

// ToPieChart renders the margin distribution histogram as a pie chart.
func (h MarginHistogram) ToPieChart() PieChartData {
	return PieChartData{
		Type:   "pie",
		Labels: []string{"Loss", "Low", "OK", "Good", "Excellent"},
		Values: []float64{
			float64(h.Loss),
			float64(h.Low),
			float64(h.OK),
			float64(h.Good),
			float64(h.Excellent),
		},
	}
}
