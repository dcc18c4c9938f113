package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteBarChart renders labels/values as an HTML bar chart at path.
func WriteBarChart(path, title, yAxisLabel string, labels []string, values []int64) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "100%", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yAxisLabel}),
	)

	bar.SetXAxis(labels)

	barData := make([]opts.BarData, len(values))
	for i, v := range values {
		barData[i] = opts.BarData{Value: v}
	}

	bar.AddSeries(yAxisLabel, barData)

	file, createErr := os.Create(filepath.Clean(path))
	if createErr != nil {
		return fmt.Errorf("create plot file: %w", createErr)
	}
	defer file.Close()

	renderErr := bar.Render(file)
	if renderErr != nil {
		return fmt.Errorf("render plot: %w", renderErr)
	}

	return nil
}
