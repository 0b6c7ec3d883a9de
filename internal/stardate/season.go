package stardate

import "fmt"

const (
	// FirstEpisode and LastEpisode bound the corpus in broadcast order.
	FirstEpisode = 1
	LastEpisode  = 176
	// EpisodeCount is the number of scripts a complete corpus holds.
	EpisodeCount = LastEpisode - FirstEpisode + 1
	// SeasonCount is the number of seasons covered by the partition.
	SeasonCount = 7
)

// SeasonRange maps an inclusive block of episode numbers to a season.
type SeasonRange struct {
	Season int `json:"season"`
	First  int `json:"first_episode"`
	Last   int `json:"last_episode"`
}

// Episodes reports how many episodes the range covers.
func (r SeasonRange) Episodes() int {
	return r.Last - r.First + 1
}

// Contains reports whether episode falls inside the range.
func (r SeasonRange) Contains(episode int) bool {
	return episode >= r.First && episode <= r.Last
}

// Ranges are ordered, contiguous and cover FirstEpisode..LastEpisode.
var partition = []SeasonRange{
	{Season: 1, First: 1, Last: 25},
	{Season: 2, First: 26, Last: 47},
	{Season: 3, First: 48, Last: 73},
	{Season: 4, First: 74, Last: 99},
	{Season: 5, First: 100, Last: 125},
	{Season: 6, First: 126, Last: 151},
	{Season: 7, First: 152, Last: 176},
}

// Partition returns a copy of the episode to season table.
func Partition() []SeasonRange {
	out := make([]SeasonRange, len(partition))
	copy(out, partition)
	return out
}

// SeasonFor returns the season of an episode. Episodes outside the corpus are
// an input contract violation rather than a silent default.
func SeasonFor(episode int) (int, error) {
	for _, r := range partition {
		if r.Contains(episode) {
			return r.Season, nil
		}
	}
	return 0, Wrap(ErrInputContract, "season", "lookup",
		fmt.Sprintf("episode %d outside %d..%d", episode, FirstEpisode, LastEpisode), nil)
}

// SeasonRangeFor returns the partition entry for season.
func SeasonRangeFor(season int) (SeasonRange, bool) {
	for _, r := range partition {
		if r.Season == season {
			return r, true
		}
	}
	return SeasonRange{}, false
}
