package stardate_test

import (
	"errors"
	"testing"

	"stardate/internal/stardate"
)

func TestPartitionIsTotalAndContiguous(t *testing.T) {
	ranges := stardate.Partition()
	if len(ranges) != stardate.SeasonCount {
		t.Fatalf("expected %d seasons, got %d", stardate.SeasonCount, len(ranges))
	}
	next := stardate.FirstEpisode
	covered := 0
	for i, r := range ranges {
		if r.Season != i+1 {
			t.Fatalf("range %d has season %d", i, r.Season)
		}
		if r.First != next {
			t.Fatalf("season %d starts at %d, want %d (gap or overlap)", r.Season, r.First, next)
		}
		if r.Last < r.First {
			t.Fatalf("season %d is empty: %+v", r.Season, r)
		}
		covered += r.Episodes()
		next = r.Last + 1
	}
	if next-1 != stardate.LastEpisode || covered != stardate.EpisodeCount {
		t.Fatalf("partition ends at %d covering %d episodes", next-1, covered)
	}
}

func TestSeasonForEveryEpisode(t *testing.T) {
	counts := map[int]int{}
	for ep := stardate.FirstEpisode; ep <= stardate.LastEpisode; ep++ {
		season, err := stardate.SeasonFor(ep)
		if err != nil {
			t.Fatalf("SeasonFor(%d) returned error: %v", ep, err)
		}
		if season < 1 || season > stardate.SeasonCount {
			t.Fatalf("SeasonFor(%d) = %d out of range", ep, season)
		}
		matches := 0
		for _, r := range stardate.Partition() {
			if r.Contains(ep) {
				matches++
			}
		}
		if matches != 1 {
			t.Fatalf("episode %d is covered by %d ranges", ep, matches)
		}
		counts[season]++
	}
	want := map[int]int{1: 25, 2: 22, 3: 26, 4: 26, 5: 26, 6: 26, 7: 25}
	for season, n := range want {
		if counts[season] != n {
			t.Fatalf("season %d has %d episodes, want %d", season, counts[season], n)
		}
	}
}

func TestSeasonForBoundaries(t *testing.T) {
	cases := map[int]int{1: 1, 25: 1, 26: 2, 47: 2, 48: 3, 73: 3, 74: 4, 99: 4, 100: 5, 125: 5, 126: 6, 151: 6, 152: 7, 176: 7}
	for ep, want := range cases {
		got, err := stardate.SeasonFor(ep)
		if err != nil || got != want {
			t.Fatalf("SeasonFor(%d) = %d, %v; want %d", ep, got, err, want)
		}
	}
}

func TestSeasonForRejectsOutOfRange(t *testing.T) {
	for _, ep := range []int{-1, 0, 177, 1000} {
		if _, err := stardate.SeasonFor(ep); !errors.Is(err, stardate.ErrInputContract) {
			t.Fatalf("SeasonFor(%d) error = %v, want ErrInputContract", ep, err)
		}
	}
}

func TestPartitionReturnsCopy(t *testing.T) {
	ranges := stardate.Partition()
	ranges[0].Last = 100
	if r, _ := stardate.SeasonRangeFor(1); r.Last != 25 {
		t.Fatalf("partition mutated through copy: %+v", r)
	}
	if _, ok := stardate.SeasonRangeFor(8); ok {
		t.Fatal("expected no range for season 8")
	}
}
