package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"upwork-analytics/models"
)

// WriteInsightReport formats the insight report as a boxed text summary
func WriteInsightReport(w io.Writer, report *models.InsightReport) error {
	border := strings.Repeat("═", 55)
	thin := strings.Repeat("─", 55)
	var b strings.Builder

	fmt.Fprintf(&b, "\n╔%s╗\n", border)
	fmt.Fprintf(&b, "║%s║\n", center("UPWORK JOB MARKET ANALYSIS", 55))
	fmt.Fprintf(&b, "╚%s╝\n", border)

	fmt.Fprintf(&b, "\n KEY JOB MARKET METRICS\n%s\n", thin)
	fmt.Fprintf(&b, "  Number of Jobs          : %s\n", FormatCount(report.TotalJobs))
	fmt.Fprintf(&b, "  Avg Hourly Rate         : %s\n", FormatMoney(report.AvgHourlyRate, "/hr"))
	fmt.Fprintf(&b, "  Avg Fixed Price         : %s\n", FormatMoney(report.AvgFixedPrice, ""))
	fmt.Fprintf(&b, "  Avg Est. Total Pay      : %s\n", FormatMoney(report.AvgEstimatedPay, ""))

	if len(report.JobsByPaymentType) > 0 {
		fmt.Fprintf(&b, "\n JOBS PER PAYMENT TYPE\n%s\n", thin)
		for _, pt := range []models.PaymentType{models.PaymentHourly, models.PaymentFixed, models.PaymentUnknown} {
			fmt.Fprintf(&b, "  %-25s %s\n", string(pt)+":", FormatCount(report.JobsByPaymentType[pt]))
		}
	}

	if len(report.JobsByExperience) > 0 {
		fmt.Fprintf(&b, "\n JOBS PER EXPERIENCE LEVEL\n%s\n", thin)
		type levelCount struct {
			level string
			count int
		}
		var levels []levelCount
		for level, cnt := range report.JobsByExperience {
			levels = append(levels, levelCount{level, cnt})
		}
		sort.Slice(levels, func(i, j int) bool {
			if levels[i].count != levels[j].count {
				return levels[i].count > levels[j].count
			}
			return levels[i].level < levels[j].level
		})
		for _, lc := range levels {
			fmt.Fprintf(&b, "  %-25s %s\n", truncate(lc.level, 24)+":", FormatCount(lc.count))
		}
	}

	if len(report.TopSkills) > 0 {
		fmt.Fprintf(&b, "\n TOP %d SKILLS\n%s\n", len(report.TopSkills), thin)
		maxCount := report.TopSkills[0].JobCount
		for i, s := range report.TopSkills {
			fmt.Fprintf(&b, "  %2d. %-22s %6d  %-12s %s\n",
				i+1, truncate(s.Skill, 22), s.JobCount, FormatMoney(s.AvgPay, ""), bar(s.JobCount, maxCount, 12))
		}
	}

	fmt.Fprintf(&b, "\n%s\n\n", border)

	_, err := io.WriteString(w, b.String())
	return err
}

// bar scales count against max into at most width blocks
func bar(count, max, width int) string {
	if max <= 0 || count <= 0 {
		return ""
	}
	n := count * width / max
	if n == 0 {
		n = 1
	}
	return strings.Repeat("▓", n)
}

func center(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return s
	}
	pad := (width - len(runes)) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-len(runes)-pad)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
