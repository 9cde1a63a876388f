package util

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/mihai-snyk/substitution-decoder/pkg/substitution/framework"
)

// PlotConvergence renders the best, mean and record score of every
// generation as an HTML line chart at path.
func PlotConvergence(history []framework.GenerationStats, title, path string) error {
	if len(history) == 0 {
		return fmt.Errorf("no generations to plot for %s", title)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Convergence of %s", title),
			Subtitle: fmt.Sprintf("%d generations", len(history)),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "generation",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "score",
			Min:  0,
			Max:  1,
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	generations := make([]int, len(history))
	best := make([]opts.LineData, len(history))
	mean := make([]opts.LineData, len(history))
	record := make([]opts.LineData, len(history))
	for i, s := range history {
		generations[i] = s.Generation
		best[i] = opts.LineData{Value: s.BestScore}
		mean[i] = opts.LineData{Value: s.MeanScore}
		record[i] = opts.LineData{Value: s.RecordScore}
	}

	line.SetXAxis(generations).
		AddSeries("Best", best).
		AddSeries("Mean", mean).
		AddSeries("Record", record).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
		)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return line.Render(f)
}
