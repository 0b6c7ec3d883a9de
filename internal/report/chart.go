package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/lipgloss"

	"stardate/internal/stardate"
)

// ChartOptions sizes and styles terminal charts.
type ChartOptions struct {
	Width  int
	Height int
	Color  bool
}

const (
	minChartWidth  = 10
	minChartHeight = 3
)

var (
	trendStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	captionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func (o ChartOptions) normalized() ChartOptions {
	if o.Width < minChartWidth {
		o.Width = minChartWidth
	}
	if o.Height < minChartHeight {
		o.Height = minChartHeight
	}
	return o
}

func (o ChartOptions) render(style lipgloss.Style, s string) string {
	if !o.Color {
		return s
	}
	return style.Render(s)
}

// RenderTrend draws the first stardate of each episode as a sparkline.
// Values are plotted relative to the lowest stardate so that the climb across
// seasons is visible; the caption carries the absolute range.
func RenderTrend(points []EpisodePoint, opts ChartOptions) string {
	opts = opts.normalized()
	if len(points) == 0 {
		return opts.render(captionStyle, "no stardates to chart")
	}

	low, high := points[0].Stardate, points[0].Stardate
	for _, p := range points[1:] {
		low = min(low, p.Stardate)
		high = max(high, p.Stardate)
	}

	// The sparkline keeps only the newest Width values; sample evenly so the
	// whole run fits.
	values := make([]float64, 0, opts.Width)
	step := float64(len(points)) / float64(opts.Width)
	if step < 1 {
		step = 1
	}
	for i := 0.0; int(i) < len(points); i += step {
		values = append(values, points[int(i)].Stardate-low)
	}

	spark := sparkline.New(opts.Width, opts.Height)
	spark.PushAll(values)
	spark.Draw()

	caption := fmt.Sprintf("episodes %d-%d, stardate %s to %s",
		points[0].Episode, points[len(points)-1].Episode,
		stardate.FormatStardate(low), stardate.FormatStardate(high))
	return opts.render(trendStyle, spark.View()) + "\n" + opts.render(captionStyle, caption)
}

// RenderDecimalChart draws the decimal digit distribution as a bar chart.
func RenderDecimalChart(dist [10]int, opts ChartOptions) string {
	opts = opts.normalized()
	style := lipgloss.NewStyle()
	if opts.Color {
		style = barStyle
	}

	data := make([]barchart.BarData, 0, len(dist))
	total := 0
	for digit, n := range dist {
		total += n
		data = append(data, barchart.BarData{
			Label: strconv.Itoa(digit),
			Values: []barchart.BarValue{{
				Name:  strconv.Itoa(digit),
				Value: float64(n),
				Style: style,
			}},
		})
	}

	chart := barchart.New(opts.Width, opts.Height)
	chart.PushAll(data)
	chart.Draw()

	counts := make([]string, 0, len(dist))
	for digit, n := range dist {
		counts = append(counts, fmt.Sprintf("%d:%d", digit, n))
	}
	caption := fmt.Sprintf("%d records  %s", total, strings.Join(counts, " "))
	return chart.View() + "\n" + opts.render(captionStyle, caption)
}
