package corpus_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"stardate/internal/config"
	"stardate/internal/corpus"
	"stardate/internal/stardate"
	"stardate/internal/testsupport"
)

func TestLoadReadsEveryEpisodeInOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := testsupport.NewConfig(t, testsupport.WithWorkers(8), testsupport.WithFullCorpus())
	scripts, err := corpus.NewLoader(cfg, nil).Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(scripts) != stardate.EpisodeCount {
		t.Fatalf("expected %d scripts, got %d", stardate.EpisodeCount, len(scripts))
	}
	for i, script := range scripts {
		if script.Episode != i+1 {
			t.Fatalf("script %d has episode %d", i, script.Episode)
		}
		if script.Lines[1] != testsupport.CorpusLine(script.Episode) {
			t.Fatalf("episode %d line = %q", script.Episode, script.Lines[1])
		}
	}
	if got := len(scripts[1].Lines); got != 3 {
		t.Fatalf("episode 2 should carry the extra sentinel line, got %d lines", got)
	}
}

func TestLoadMissingScriptIsInputContract(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := testsupport.NewConfig(t, testsupport.WithFullCorpus())
	if err := os.Remove(cfg.ScriptPath(100)); err != nil {
		t.Fatalf("remove script: %v", err)
	}

	_, err := corpus.NewLoader(cfg, nil).Load(context.Background())
	if !errors.Is(err, stardate.ErrInputContract) {
		t.Fatalf("expected ErrInputContract, got %v", err)
	}
	if !strings.Contains(err.Error(), "episode 100") {
		t.Fatalf("error should name the episode: %v", err)
	}

	missing, err := corpus.NewLoader(cfg, nil).Missing()
	if err != nil {
		t.Fatalf("Missing returned error: %v", err)
	}
	if diff := cmp.Diff([]int{100}, missing); diff != "" {
		t.Fatalf("missing mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEpisodesSubset(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteScript(t, cfg, 7, "first", "second")
	testsupport.WriteScript(t, cfg, 3, "only")

	scripts, err := corpus.NewLoader(cfg, nil).LoadEpisodes(context.Background(), []int{7, 3})
	if err != nil {
		t.Fatalf("LoadEpisodes returned error: %v", err)
	}
	want := []stardate.RawScript{
		{Episode: 7, Lines: []string{"first", "second"}},
		{Episode: 3, Lines: []string{"only"}},
	}
	if diff := cmp.Diff(want, scripts); diff != "" {
		t.Fatalf("scripts mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEpisodesCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := testsupport.NewConfig(t, testsupport.WithFullCorpus())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := corpus.NewLoader(cfg, nil).Load(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestReadLinesHandlesCRLFAndBOM(t *testing.T) {
	input := "\xef\xbb\xbfCaptain's log, stardate 41153.7\r\nPICARD: Engage.\r\n"
	lines, err := corpus.ReadLines(strings.NewReader(input), config.EncodingUTF8)
	if err != nil {
		t.Fatalf("ReadLines returned error: %v", err)
	}
	want := []string{"Captain's log, stardate 41153.7", "PICARD: Engage."}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestReadLinesDecodesWindows1252(t *testing.T) {
	// 0x92 is a right single quotation mark in windows-1252.
	input := "Captain\x92s log, stardate 41153.7\n"
	lines, err := corpus.ReadLines(strings.NewReader(input), config.EncodingWindows1252)
	if err != nil {
		t.Fatalf("ReadLines returned error: %v", err)
	}
	if lines[0] != "Captain’s log, stardate 41153.7" {
		t.Fatalf("unexpected decode %q", lines[0])
	}
	if got := stardate.ExtractMatches(lines); len(got) != 1 || got[0] != "date 41153.7" {
		t.Fatalf("decoded line should still match, got %q", got)
	}

	latin, err := corpus.ReadLines(strings.NewReader("Caf\xe9\n"), config.EncodingISO88591)
	if err != nil {
		t.Fatalf("ReadLines latin1 returned error: %v", err)
	}
	if latin[0] != "Café" {
		t.Fatalf("unexpected latin1 decode %q", latin[0])
	}
}

func TestReadLinesRejectsUnknownEncoding(t *testing.T) {
	if _, err := corpus.ReadLines(strings.NewReader("x"), "ebcdic"); err == nil {
		t.Fatal("expected error for unknown encoding")
	}
}
