// Package chart turns analytics aggregates into render-ready chart
// configurations. The shapes are generic JSON (type, axes, series of
// labeled points) so the dashboard page renders them without knowing how
// they were computed.
package chart

// Config defines how to render one chart.
type Config struct {
	ChartType  string   `json:"chartType"`
	Title      string   `json:"title"`
	Subtitle   string   `json:"subtitle,omitempty"`
	XAxis      string   `json:"xAxis,omitempty"`
	YAxis      string   `json:"yAxis,omitempty"`
	YAxisRight string   `json:"yAxisRight,omitempty"`
	Series     []Series `json:"series"`
	ShowLegend bool     `json:"showLegend"`
	ShowGrid   bool     `json:"showGrid"`
	XMax       float64  `json:"xMax,omitempty"`
	Notes      []string `json:"notes,omitempty"`
}

// Series is one data series of a chart.
type Series struct {
	Name  string  `json:"name"`
	Axis  string  `json:"axis,omitempty"` // "left" or "right" on dual-axis charts
	Color string  `json:"color,omitempty"`
	Data  []Point `json:"data"`
}

// Point is a single datum. X and Size are only set where the chart type
// needs them (scatter, bubble); Color overrides the series color for
// individually colored markers.
type Point struct {
	Label string  `json:"label"`
	X     float64 `json:"x,omitempty"`
	Value float64 `json:"value"`
	Size  float64 `json:"size,omitempty"`
	Color string  `json:"color,omitempty"`
}

// Stress level palettes, matching the dashboard styling.
var (
	stressScatterColors = map[string]string{
		"Low":      "#2ca02c",
		"Moderate": "#ff7f0e",
		"High":     "#d62728",
	}
	stressBarColors = map[string]string{
		"Low":      "#2E7D32",
		"Moderate": "#F57C00",
		"High":     "#C62828",
	}
	stressDotColors = map[string]string{
		"Low":      "#2E7D32",
		"Moderate": "#FFC000",
		"High":     "#C62828",
	}
	activityColors = map[string]string{
		"Physical Activity": "#1f77b4",
		"Social Hours":      "#ff7f0e",
	}
)
