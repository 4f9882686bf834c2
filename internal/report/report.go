// Package report renders derived wardrobe statistics for display: a
// spending-by-category pie chart and a plain-text period summary.
package report

import (
	"fmt"
	"strings"

	"github.com/go-analyze/charts"

	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

// CategoryChartPNG renders period spending per category as a pie chart.
// Returns the PNG image as bytes.
func CategoryChartPNG(spending []model.CategorySpending, period model.Period) ([]byte, error) {
	if len(spending) == 0 {
		return nil, fmt.Errorf("no spending to chart")
	}

	values := make([]float64, 0, len(spending))
	names := make([]string, 0, len(spending))
	for _, bucket := range spending {
		values = append(values, bucket.Amount.InexactFloat64())
		names = append(names, string(bucket.Category))
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{
			Text: fmt.Sprintf("Spending by category - last %d days", period.Days()),
		}),
		charts.LegendLabelsOptionFunc(names),
	)
	if err != nil {
		return nil, fmt.Errorf("creating chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("rendering chart: %w", err)
	}
	return buf, nil
}

// Summary formats a period's budget report, category breakdown, monthly
// title and dormant-item count as readable text.
func Summary(report wardrobe.BudgetReport, spending []model.CategorySpending, title model.MonthlyTitle, coldCount int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Last %d days\n", report.Period.Days())
	fmt.Fprintf(&b, "  spent      %s\n", report.Spent)
	fmt.Fprintf(&b, "  recovered  %s\n", report.Recovered)
	fmt.Fprintf(&b, "  net        %s\n", report.Net)
	fmt.Fprintf(&b, "  budget     %s\n", report.Budget)

	switch report.State {
	case model.BudgetNetProfit:
		fmt.Fprintf(&b, "  net profit of %s - the wardrobe paid for itself\n", report.Net.Neg())
	case model.BudgetOver:
		fmt.Fprintf(&b, "  over budget by %s\n", report.Remaining.Neg())
	default:
		fmt.Fprintf(&b, "  under budget, %s remaining\n", report.Remaining)
	}

	if len(spending) > 0 {
		b.WriteString("\nBy category:\n")
		for _, bucket := range spending {
			fmt.Fprintf(&b, "  %-15s %s\n", bucket.Category, bucket.Amount)
		}
	}

	if coldCount > 0 {
		fmt.Fprintf(&b, "\nDormant items: %d\n", coldCount)
	}

	fmt.Fprintf(&b, "\nThis month's title: %s - %s\n", title.Title, title.Subtitle)
	return b.String()
}
