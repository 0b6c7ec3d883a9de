package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"stardate/internal/config"
	"stardate/internal/stardate"
)

// Table is a rendered-format independent grid of strings.
type Table struct {
	Headers []string
	Rows    [][]string
	// RightAligned lists zero based column indexes holding numbers.
	RightAligned []int
}

// Render writes the table in the given format: table, csv or markdown.
func (t Table) Render(w io.Writer, format string) error {
	columns := len(t.Headers)
	if columns == 0 {
		return nil
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = t.Headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range t.Rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	right := make(map[int]bool, len(t.RightAligned))
	for _, idx := range t.RightAligned {
		right[idx] = true
	}
	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if right[i] {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	var out string
	switch format {
	case "", config.FormatTable:
		out = tw.Render()
	case config.FormatCSV:
		out = tw.RenderCSV()
	case config.FormatMarkdown:
		out = tw.RenderMarkdown()
	default:
		return fmt.Errorf("unsupported table format %q", format)
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

// RecordsTable lays out extracted records, one per row.
func RecordsTable(records []stardate.Record) Table {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			strconv.Itoa(rec.Episode),
			strconv.Itoa(rec.Season),
			rec.Title,
			stardate.FormatStardate(rec.Stardate),
			strconv.Itoa(rec.Decimal),
		})
	}
	return Table{
		Headers:      []string{"episode", "season", "episode_title", "stardate", "stardate_decimal"},
		Rows:         rows,
		RightAligned: []int{0, 1, 3, 4},
	}
}

// SeasonSummaryTable lays out per-season statistics.
func SeasonSummaryTable(summaries []SeasonSummary) Table {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		row := []string{
			strconv.Itoa(s.Season),
			fmt.Sprintf("%d-%d", s.FirstEpisode, s.LastEpisode),
			strconv.Itoa(s.Episodes),
			strconv.Itoa(s.Records),
		}
		if s.Records == 0 {
			row = append(row, "", "", "", "")
		} else {
			row = append(row,
				stardate.FormatStardate(s.Min),
				stardate.FormatStardate(s.Max),
				strconv.FormatFloat(s.Mean, 'f', 1, 64),
				strconv.FormatFloat(s.Median, 'f', 1, 64),
			)
		}
		rows = append(rows, row)
	}
	return Table{
		Headers:      []string{"season", "episodes", "with_stardates", "records", "min", "max", "mean", "median"},
		Rows:         rows,
		RightAligned: []int{0, 2, 3, 4, 5, 6, 7},
	}
}

// DistributionTable lays out the decimal digit counts with their share.
func DistributionTable(dist [10]int) Table {
	total := 0
	for _, n := range dist {
		total += n
	}
	rows := make([][]string, 0, len(dist))
	for digit, n := range dist {
		share := 0.0
		if total > 0 {
			share = float64(n) * 100 / float64(total)
		}
		rows = append(rows, []string{
			strconv.Itoa(digit),
			strconv.Itoa(n),
			strconv.FormatFloat(share, 'f', 1, 64) + "%",
		})
	}
	return Table{
		Headers:      []string{"stardate_decimal", "records", "share"},
		Rows:         rows,
		RightAligned: []int{0, 1, 2},
	}
}

// PartitionTable lays out the episode range of every season.
func PartitionTable() Table {
	partition := stardate.Partition()
	rows := make([][]string, 0, len(partition))
	for _, r := range partition {
		rows = append(rows, []string{
			strconv.Itoa(r.Season),
			strconv.Itoa(r.First),
			strconv.Itoa(r.Last),
			strconv.Itoa(r.Episodes()),
		})
	}
	return Table{
		Headers:      []string{"season", "first_episode", "last_episode", "episodes"},
		Rows:         rows,
		RightAligned: []int{0, 1, 2, 3},
	}
}

// TitlesTable lays out a title mapping ordered by episode.
func TitlesTable(titles stardate.Titles) Table {
	episodes := make([]int, 0, len(titles))
	for ep := range titles {
		episodes = append(episodes, ep)
	}
	sort.Ints(episodes)
	rows := make([][]string, 0, len(episodes))
	for _, ep := range episodes {
		season := ""
		if s, err := stardate.SeasonFor(ep); err == nil {
			season = strconv.Itoa(s)
		}
		rows = append(rows, []string{strconv.Itoa(ep), season, titles[ep]})
	}
	return Table{
		Headers:      []string{"episode", "season", "episode_title"},
		Rows:         rows,
		RightAligned: []int{0, 1},
	}
}
