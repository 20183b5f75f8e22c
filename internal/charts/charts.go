// Package charts renders aggregator output as an HTML dashboard. It
// consumes plain report data only; no aggregator depends on it.
package charts

import (
	"fmt"
	"io"
	"math"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"childcare-insights-go/internal/aggregator"
	"childcare-insights-go/internal/report"
)

const chartHeight = "500px"

// Dashboard palette, matching the survey team's reporting colors.
const (
	colorPromoter  = "#00B050"
	colorPassive   = "#FFC000"
	colorDetractor = "#FF0000"
	colorAccent    = "#FF4B4B"
	colorValue     = "#4B4BFF"
)

// trendColors keys the monthly-trend series to their line colors.
var trendColors = map[string]string{
	"NPS":                       colorAccent,
	"Ambience And Atmosphere":   colorPromoter,
	"Curriculum and Activities": colorPassive,
	"Value For Money":           colorValue,
}

// NPSDistributionPie builds the donut chart of the three NPS buckets.
func NPSDistributionPie(d aggregator.Distribution) *echarts.Pie {
	pie := echarts.NewPie()
	pie.SetGlobalOptions(
		echarts.WithTitleOpts(opts.Title{Title: "NPS Distribution"}),
		echarts.WithInitializationOpts(opts.Initialization{Height: chartHeight}),
	)

	data := []opts.PieData{
		{Name: "Promoters", Value: d.Promoters, ItemStyle: &opts.ItemStyle{Color: colorPromoter}},
		{Name: "Passives", Value: d.Passives, ItemStyle: &opts.ItemStyle{Color: colorPassive}},
		{Name: "Detractors", Value: d.Detractors, ItemStyle: &opts.ItemStyle{Color: colorDetractor}},
	}

	pie.AddSeries("NPS", data).SetSeriesOptions(
		echarts.WithPieChartOpts(opts.PieChart{Radius: []string{"30%", "60%"}}),
		echarts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}),
	)
	return pie
}

// CorrelationHeatMap builds the satisfaction-metrics heatmap. Undefined
// cells are left out of the series, which echarts shows as blanks.
func CorrelationHeatMap(c aggregator.Correlation) *echarts.HeatMap {
	hm := echarts.NewHeatMap()
	hm.SetGlobalOptions(
		echarts.WithTitleOpts(opts.Title{Title: "Correlation between Satisfaction Metrics"}),
		echarts.WithInitializationOpts(opts.Initialization{Height: "700px"}),
		echarts.WithXAxisOpts(opts.XAxis{
			Type: "category", Data: c.Labels,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
			AxisLabel: &opts.AxisLabel{Rotate: 45, Interval: "0"},
		}),
		echarts.WithYAxisOpts(opts.YAxis{
			Type: "category", Data: c.Labels,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		echarts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true), Min: -1, Max: 1,
			InRange: &opts.VisualMapInRange{Color: []string{"#2166AC", "#F7F7F7", "#B2182B"}},
			Orient:  "horizontal", Left: "center", Bottom: "2%",
		}),
	)

	var data []opts.HeatMapData
	for i, row := range c.Matrix {
		for j, cell := range row {
			if cell == nil {
				continue
			}
			data = append(data, opts.HeatMapData{Value: []any{i, j, round2(*cell)}})
		}
	}
	hm.AddSeries("Correlation", data, echarts.WithLabelOpts(opts.Label{
		Show: opts.Bool(true), Position: "inside",
	}))
	return hm
}

// CategoriesBar builds the top-categories bar chart.
func CategoriesBar(counts []aggregator.CategoryCount) *echarts.Bar {
	bar := echarts.NewBar()
	bar.SetGlobalOptions(
		echarts.WithTitleOpts(opts.Title{Title: "Top 10 Feedback Categories"}),
		echarts.WithInitializationOpts(opts.Initialization{Height: chartHeight}),
		echarts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Rotate: 45, Interval: "0"},
		}),
		echarts.WithYAxisOpts(opts.YAxis{Name: "Count"}),
	)

	labels := make([]string, len(counts))
	data := make([]opts.BarData, len(counts))
	for i, c := range counts {
		labels[i] = c.Name
		data[i] = opts.BarData{Value: c.Count}
	}
	bar.SetXAxis(labels)
	bar.AddSeries("Mentions", data, echarts.WithItemStyleOpts(opts.ItemStyle{Color: colorAccent}))
	return bar
}

// WeeklyLine builds the weekly response-rate line.
func WeeklyLine(series []aggregator.WeekCount) *echarts.Line {
	line := echarts.NewLine()
	line.SetGlobalOptions(
		echarts.WithTitleOpts(opts.Title{Title: "Weekly Response Rate"}),
		echarts.WithInitializationOpts(opts.Initialization{Height: chartHeight}),
		echarts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)

	labels := make([]string, len(series))
	data := make([]opts.LineData, len(series))
	for i, w := range series {
		labels[i] = w.WeekEnd.Format("2006-01-02")
		data[i] = opts.LineData{Value: w.Count}
	}
	line.SetXAxis(labels)
	line.AddSeries("Responses", data,
		echarts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
		echarts.WithItemStyleOpts(opts.ItemStyle{Color: colorAccent}),
	)
	return line
}

// MonthlyTrendsLine builds the four-metric monthly trend lines. Months
// with no valid observations for a metric plot as gaps.
func MonthlyTrendsLine(trends []aggregator.MonthlyTrend) *echarts.Line {
	line := echarts.NewLine()
	line.SetGlobalOptions(
		echarts.WithTitleOpts(opts.Title{Title: "Monthly Trends in Key Metrics"}),
		echarts.WithInitializationOpts(opts.Initialization{Height: chartHeight}),
		echarts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		echarts.WithYAxisOpts(opts.YAxis{Name: "Average Score"}),
	)

	labels := make([]string, len(trends))
	for i, t := range trends {
		labels[i] = t.Month
	}
	line.SetXAxis(labels)

	for _, metric := range aggregator.TrendMetrics {
		data := make([]opts.LineData, len(trends))
		for i, t := range trends {
			if mean := t.Means[metric]; mean != nil {
				data[i] = opts.LineData{Value: *mean}
			} else {
				data[i] = opts.LineData{Value: "-"}
			}
		}
		line.AddSeries(metric, data,
			echarts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
			echarts.WithItemStyleOpts(opts.ItemStyle{Color: trendColors[metric]}),
		)
	}
	return line
}

// RenderDashboard writes the full dashboard page for one report.
func RenderDashboard(w io.Writer, rep report.Report) error {
	page := components.NewPage()
	page.PageTitle = "Childcare Center Analytics Dashboard"
	page.SetLayout(components.PageFlexLayout)

	page.AddCharts(
		NPSDistributionPie(rep.NPS),
		CorrelationHeatMap(rep.Correlation),
		CategoriesBar(rep.TopCategories),
		WeeklyLine(rep.Weekly),
		MonthlyTrendsLine(rep.Monthly),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
