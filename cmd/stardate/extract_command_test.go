package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"stardate/internal/episodes"
	"stardate/internal/stardate"
	"stardate/internal/testsupport"
)

func episodeListPage() string {
	var b strings.Builder
	b.WriteString("<html><body><table>")
	for ep := stardate.FirstEpisode; ep <= stardate.LastEpisode; ep++ {
		fmt.Fprintf(&b, `<tr><td>%d</td><td class="summary">"Episode %d"</td></tr>`, ep, ep)
	}
	b.WriteString("</table></body></html>")
	return b.String()
}

func TestExtractCSVSeasonFilter(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithFullCorpus())

	out, stderr, err := runCLI(t, []string{"extract", "--format", "csv", "--season", "7"}, env.configPath)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	lines := csvLines(out)
	if len(lines) != 26 {
		t.Fatalf("expected header plus 25 rows, got %d", len(lines))
	}
	if strings.ToLower(lines[0]) != "episode,season,episode_title,stardate,stardate_decimal" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "152,7,,41152.2,2" {
		t.Fatalf("unexpected first row %q", lines[1])
	}
	requireContains(t, stderr, "176 scripts, 177 matches, 1 dropped (1 sentinel, 0 unparseable), 176 records")
}

func TestExtractJSON(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithFullCorpus())

	out, _, err := runCLI(t, []string{"extract", "--format", "json"}, env.configPath)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	var got extractOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if got.RunID == "" || got.Saved {
		t.Fatalf("unexpected run metadata: %+v", got)
	}
	if got.TitlesSource != titlesDisabled {
		t.Fatalf("titles source = %q", got.TitlesSource)
	}
	if got.Stats.Records != stardate.EpisodeCount || got.Stats.Sentinels != 1 {
		t.Fatalf("unexpected stats %+v", got.Stats)
	}
	for i, rec := range got.Records {
		if rec.Episode != i+1 || rec.Stardate != testsupport.CorpusStardate(rec.Episode) || rec.Decimal != rec.Episode%10 {
			t.Fatalf("unexpected record %d: %+v", i, rec)
		}
	}
}

func TestExtractMissingScriptIsInputContract(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithFullCorpus())
	if err := os.Remove(env.cfg.ScriptPath(42)); err != nil {
		t.Fatalf("remove script: %v", err)
	}

	_, _, err := runCLI(t, []string{"extract"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for incomplete corpus")
	}
	if code := stardate.ExitCode(err); code != 3 {
		t.Fatalf("exit code = %d, want 3 (%v)", code, err)
	}
	requireContains(t, err.Error(), "42")
}

func TestExtractRejectsBadFlags(t *testing.T) {
	env := setupCLITestEnv(t)
	cases := [][]string{
		{"extract", "--season", "8"},
		{"extract", "--episode", "177"},
		{"extract", "--format", "yaml"},
	}
	for _, args := range cases {
		if _, _, err := runCLI(t, args, env.configPath); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestExtractTitlesFromHTMLFile(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithFullCorpus())
	page := filepath.Join(testsupport.BaseDir(env.cfg), "list.html")
	testsupport.WriteFile(t, page, []byte(episodeListPage()))

	out, _, err := runCLI(t, []string{"extract", "--format", "csv", "--episode", "3", "--titles-html", page}, env.configPath)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	lines := csvLines(out)
	if len(lines) != 2 || lines[1] != "3,1,Episode 3,41003.3,3" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestExtractScrapesTitlesThenUsesCache(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(episodeListPage()))
	}))
	defer server.Close()

	env := setupCLITestEnv(t, testsupport.WithFullCorpus(), testsupport.WithEpisodesURL(server.URL))

	for i, want := range []episodes.Source{episodes.SourceNetwork, episodes.SourceCache} {
		out, _, err := runCLI(t, []string{"extract", "--format", "json"}, env.configPath)
		if err != nil {
			t.Fatalf("extract #%d: %v", i, err)
		}
		var got extractOutput
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("decode json: %v", err)
		}
		if got.TitlesSource != string(want) {
			t.Fatalf("run %d titles source = %q, want %q", i, got.TitlesSource, want)
		}
		if got.Records[175].Title != "Episode 176" {
			t.Fatalf("unexpected title %+v", got.Records[175])
		}
	}
	if hits.Load() != 1 {
		t.Fatalf("expected one scrape, got %d", hits.Load())
	}
}

func TestExtractSurvivesTitleFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()

	env := setupCLITestEnv(t, testsupport.WithFullCorpus(), testsupport.WithEpisodesURL(server.URL))
	out, stderr, err := runCLI(t, []string{"extract", "--format", "json"}, env.configPath)
	if err != nil {
		t.Fatalf("extract should not fail on title errors: %v", err)
	}
	var got extractOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if got.TitlesSource != titlesUnavailable || len(got.Records) != stardate.EpisodeCount {
		t.Fatalf("unexpected result: source=%q records=%d", got.TitlesSource, len(got.Records))
	}
	requireContains(t, stderr, "episode titles unavailable")
}

func TestExtractSaveThenHistoryAndShow(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithFullCorpus())

	_, stderr, err := runCLI(t, []string{"extract", "--save", "--format", "csv"}, env.configPath)
	if err != nil {
		t.Fatalf("extract --save: %v", err)
	}
	requireContains(t, stderr, "Saved run ")

	out, _, err := runCLI(t, []string{"history", "--format", "json"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var runs []struct {
		ID    string         `json:"id"`
		Stats stardate.Stats `json:"stats"`
	}
	if err := json.Unmarshal([]byte(out), &runs); err != nil {
		t.Fatalf("decode history: %v\n%s", err, out)
	}
	if len(runs) != 1 || runs[0].Stats.Records != stardate.EpisodeCount {
		t.Fatalf("unexpected history %+v", runs)
	}

	out, _, err = runCLI(t, []string{"show", runs[0].ID[:8], "--format", "csv", "--episode", "10"}, env.configPath)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if lines := csvLines(out); len(lines) != 2 || lines[1] != "10,1,,41010.0,0" {
		t.Fatalf("unexpected show output %q", out)
	}

	out, _, err = runCLI(t, []string{"summary", "--run", "latest", "--format", "csv"}, env.configPath)
	if err != nil {
		t.Fatalf("summary --run latest: %v", err)
	}
	requireContains(t, out, "1,1-25,25,25,41001.1,41025.5")

	out, _, err = runCLI(t, []string{"delete", "latest"}, env.configPath)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	requireContains(t, out, "Deleted run "+runs[0].ID)
	if _, _, err := runCLI(t, []string{"show", runs[0].ID}, env.configPath); err == nil {
		t.Fatal("expected deleted run to be gone")
	}
}

func TestShowWithoutRuns(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"show"}, env.configPath)
	if err == nil {
		t.Fatal("expected error when no runs are saved")
	}
	requireContains(t, err.Error(), "no saved runs")

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No saved runs")
}
