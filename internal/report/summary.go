package report

import (
	"math"
	"slices"

	"stardate/internal/stardate"
)

// SeasonSummary describes the stardates found in one season.
type SeasonSummary struct {
	Season       int     `json:"season"`
	FirstEpisode int     `json:"first_episode"`
	LastEpisode  int     `json:"last_episode"`
	Episodes     int     `json:"episodes_with_stardates"`
	Records      int     `json:"records"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
}

// SummarizeSeasons returns one summary per season in the partition, including
// seasons without any records.
func SummarizeSeasons(records []stardate.Record) []SeasonSummary {
	values := make(map[int][]float64)
	episodes := make(map[int]map[int]struct{})
	for _, rec := range records {
		values[rec.Season] = append(values[rec.Season], rec.Stardate)
		if episodes[rec.Season] == nil {
			episodes[rec.Season] = make(map[int]struct{})
		}
		episodes[rec.Season][rec.Episode] = struct{}{}
	}

	partition := stardate.Partition()
	out := make([]SeasonSummary, 0, len(partition))
	for _, r := range partition {
		summary := SeasonSummary{
			Season:       r.Season,
			FirstEpisode: r.First,
			LastEpisode:  r.Last,
			Episodes:     len(episodes[r.Season]),
		}
		if vals := values[r.Season]; len(vals) > 0 {
			sorted := slices.Clone(vals)
			slices.Sort(sorted)
			sum := 0.0
			for _, v := range sorted {
				sum += v
			}
			summary.Records = len(sorted)
			summary.Min = sorted[0]
			summary.Max = sorted[len(sorted)-1]
			summary.Mean = sum / float64(len(sorted))
			summary.Median = median(sorted)
		}
		out = append(out, summary)
	}
	return out
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// DecimalDistribution counts records per decimal digit.
func DecimalDistribution(records []stardate.Record) [10]int {
	var dist [10]int
	for _, rec := range records {
		if rec.Decimal >= 0 && rec.Decimal <= 9 {
			dist[rec.Decimal]++
		}
	}
	return dist
}

// EpisodePoint is the first stardate recorded in an episode.
type EpisodePoint struct {
	Episode  int     `json:"episode"`
	Season   int     `json:"season"`
	Stardate float64 `json:"stardate"`
}

// EpisodeFirstStardates returns the first stardate of every episode that has
// one, ordered by episode. Records are expected in extraction order.
func EpisodeFirstStardates(records []stardate.Record) []EpisodePoint {
	seen := make(map[int]struct{})
	var points []EpisodePoint
	for _, rec := range records {
		if _, ok := seen[rec.Episode]; ok {
			continue
		}
		seen[rec.Episode] = struct{}{}
		points = append(points, EpisodePoint{Episode: rec.Episode, Season: rec.Season, Stardate: rec.Stardate})
	}
	slices.SortStableFunc(points, func(a, b EpisodePoint) int {
		return a.Episode - b.Episode
	})
	return points
}

// Filter keeps the records of one season and/or one episode. Zero disables a
// criterion.
func Filter(records []stardate.Record, season, episode int) []stardate.Record {
	if season == 0 && episode == 0 {
		return records
	}
	out := make([]stardate.Record, 0, len(records))
	for _, rec := range records {
		if season != 0 && rec.Season != season {
			continue
		}
		if episode != 0 && rec.Episode != episode {
			continue
		}
		out = append(out, rec)
	}
	return out
}
