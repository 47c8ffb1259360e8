package renderer

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/spello/valuation"
)

// HistoryChart renders the valuation log as an HTML line chart. One series
// tracks the portfolio total; one series per asset class tracks its value.
// Records older than days before the newest record are dropped; days <= 0
// keeps everything.
func HistoryChart(records []valuation.ValueRecord, title string, days int, w io.Writer) error {
	if len(records) == 0 {
		return fmt.Errorf("no valuation history to chart")
	}

	if days > 0 {
		cutoff := records[len(records)-1].On.Add(-days)
		for len(records) > 0 && records[0].On.Before(cutoff) {
			records = records[1:]
		}
	}

	seen := make(map[string]bool)
	classes := make([]string, 0)
	for _, rec := range records {
		for class := range rec.Classes {
			if !seen[class] {
				seen[class] = true
				classes = append(classes, class)
			}
		}
	}
	sort.Strings(classes)

	labels := make([]string, 0, len(records))
	totals := make([]opts.LineData, 0, len(records))
	classSeries := make(map[string][]opts.LineData, len(classes))
	for _, rec := range records {
		labels = append(labels, rec.On.String())
		totals = append(totals, opts.LineData{Value: rec.Total.AsFloat()})
		for _, class := range classes {
			// A date with no entry for the class leaves a gap in its series.
			if value, ok := rec.Classes[class]; ok {
				classSeries[class] = append(classSeries[class], opts.LineData{Value: value.AsFloat()})
			} else {
				classSeries[class] = append(classSeries[class], opts.LineData{Value: nil})
			}
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithAnimation(false),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithYAxisOpts(opts.YAxis{
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	line.SetXAxis(labels)
	line.AddSeries("Total", totals,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
	)

	for _, class := range classes {
		line.AddSeries(class, classSeries[class],
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
		)
	}

	return line.Render(w)
}
