package pipeline

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"go-sales-stats/internal/aggregate"
	"go-sales-stats/internal/model"
)

// FormatCurrency renders v as dollars with thousands separators and two
// decimals, rounding half away from zero: 25534.405 -> "$25,534.41".
func FormatCurrency(v decimal.Decimal) string {
	v = v.Round(2)
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Neg()
	}
	whole, frac, _ := strings.Cut(v.StringFixed(2), ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + "." + frac
}

// FormatGroupStats renders one block per group
func FormatGroupStats(label string, stats []aggregate.GroupStatistic[string]) string {
	var sb strings.Builder
	sb.Grow(2048)
	for _, s := range stats {
		fmt.Fprintf(&sb, "%s: %s  Count: %d\n", label, s.Key, s.Count)
		fmt.Fprintf(&sb, "  Min: %s\n", FormatCurrency(s.Min))
		fmt.Fprintf(&sb, "  Max: %s\n", FormatCurrency(s.Max))
		fmt.Fprintf(&sb, "  Average: %s\n", FormatCurrency(s.Average))
	}
	return sb.String()
}

// RenderText renders every result of a report, one operation per paragraph
func RenderText(report *model.Report) string {
	var sb strings.Builder
	for i, res := range report.Results {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.TrimRight(res.Text, "\n"))
		sb.WriteByte('\n')
	}
	return sb.String()
}
