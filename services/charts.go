package services

import (
	"fmt"
	"sort"

	"upwork-analytics/models"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var (
	viridis = []string{"#440154", "#3b528b", "#21918c", "#5ec962", "#fde725"}
	greens  = []string{"#f7fcf5", "#c7e9c0", "#74c476", "#238b45", "#00441b"}
)

// NewPopularityChart plots job counts per skill as horizontal bars, the
// most requested skill on top
func NewPopularityChart(top []models.SkillAggregate) *charts.Bar {
	sorted := make([]models.SkillAggregate, len(top))
	copy(sorted, top)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].JobCount < sorted[j].JobCount
	})

	names := make([]string, 0, len(sorted))
	items := make([]opts.BarData, 0, len(sorted))
	var max float32
	for _, s := range sorted {
		names = append(names, s.Skill)
		items = append(items, opts.BarData{Name: s.Skill, Value: s.JobCount})
		if float32(s.JobCount) > max {
			max = float32(s.JobCount)
		}
	}

	return newSkillBar(
		fmt.Sprintf("Top %d Skills by Number of Jobs", len(top)), "Number of Jobs",
		names, items, max, viridis,
	)
}

// NewPayChart plots average estimated pay per skill as horizontal bars,
// highest pay on top. Skills without any estimate get an empty bar.
func NewPayChart(top []models.SkillAggregate) *charts.Bar {
	sorted := make([]models.SkillAggregate, len(top))
	copy(sorted, top)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].AvgPay, sorted[j].AvgPay
		if a == nil || b == nil {
			return a == nil && b != nil
		}
		return *a < *b
	})

	names := make([]string, 0, len(sorted))
	items := make([]opts.BarData, 0, len(sorted))
	var max float32
	for _, s := range sorted {
		names = append(names, s.Skill)
		if s.AvgPay == nil {
			// "-" is echarts' marker for a missing value
			items = append(items, opts.BarData{Name: s.Skill, Value: "-"})
			continue
		}
		items = append(items, opts.BarData{Name: s.Skill, Value: roundCents(*s.AvgPay)})
		if float32(*s.AvgPay) > max {
			max = float32(*s.AvgPay)
		}
	}

	return newSkillBar(
		fmt.Sprintf("Top %d Skills by Average Estimated Pay", len(top)), "Average Estimated Pay ($)",
		names, items, max, greens,
	)
}

func newSkillBar(title, valueAxis string, names []string, items []opts.BarData, max float32, palette []string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "100%",
			Height:    "560px",
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: valueAxis}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Skill"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: true,
			Min:        0,
			Max:        max,
			InRange:    &opts.VisualMapInRange{Color: palette},
		}),
	)
	bar.SetXAxis(names).AddSeries(valueAxis, items)
	bar.XYReversal()
	return bar
}

func roundCents(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
