package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"stardate/internal/config"
	"stardate/internal/stardate"
)

// WriteScript writes lines as the script for episode, joined with newline.
func WriteScript(t testing.TB, cfg *config.Config, episode int, lines ...string) string {
	t.Helper()

	path := cfg.ScriptPath(episode)
	WriteFile(t, path, []byte(strings.Join(lines, "\n")+"\n"))
	return path
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path string, content []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func corpusStardate(episode int) string {
	return fmt.Sprintf("%d.%d", 41000+episode, episode%10)
}

// CorpusLine is the log line WriteCorpus places in the script for episode.
// Every episode gets one parseable stardate whose decimal digit is episode%10.
func CorpusLine(episode int) string {
	return "Captain's log, stardate " + corpusStardate(episode) + "."
}

// CorpusStardate is the value CorpusLine encodes for episode.
func CorpusStardate(episode int) float64 {
	value, _ := strconv.ParseFloat(corpusStardate(episode), 64)
	return value
}

// WriteCorpus writes a script for every episode. Episode 2 additionally
// carries a sentinel match so that cleaning has something to drop.
func WriteCorpus(t testing.TB, cfg *config.Config) {
	t.Helper()

	for ep := stardate.FirstEpisode; ep <= stardate.LastEpisode; ep++ {
		lines := []string{"PICARD: Make it so.", CorpusLine(ep)}
		if ep == 2 {
			lines = append(lines, "Supplemental, stardate 41148.. the away team")
		}
		WriteScript(t, cfg, ep, lines...)
	}
}
