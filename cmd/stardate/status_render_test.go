package main

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"stardate/internal/config"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Script corpus", statusError, "3 of 176 scripts missing", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Script corpus:", "[ERROR] 3 of 176 scripts missing")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Episode list", statusOK, "Reachable", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
	if got := renderStatusLine("Saved runs", statusInfo, "", false); !strings.HasSuffix(got, "[INFO]") {
		t.Fatalf("expected bare status label, got %q", got)
	}
}

func TestRenderSectionHeader(t *testing.T) {
	lines := renderSectionHeader(" Checks ", false)
	if lines[0] != "== Checks ==" || lines[1] != strings.Repeat("-", len(lines[0])) {
		t.Fatalf("unexpected header %q", lines)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}

func TestColorEnabledHonorsConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Color = config.ColorAlways
	if !colorEnabled(&cfg, io.Discard) {
		t.Fatal("always should force color")
	}
	cfg.Output.Color = config.ColorNever
	if colorEnabled(&cfg, io.Discard) {
		t.Fatal("never should disable color")
	}
	cfg.Output.Color = config.ColorAuto
	if colorEnabled(&cfg, io.Discard) {
		t.Fatal("auto should follow the terminal check")
	}
}

func TestResolveFormat(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Format = config.FormatCSV

	cases := []struct {
		flag string
		want string
	}{
		{"", config.FormatCSV},
		{"md", config.FormatMarkdown},
		{" JSON ", config.FormatJSON},
		{"table", config.FormatTable},
	}
	for _, tc := range cases {
		got, err := resolveFormat(tc.flag, &cfg)
		if err != nil || got != tc.want {
			t.Fatalf("resolveFormat(%q) = %q, %v; want %q", tc.flag, got, err, tc.want)
		}
	}
	if got, err := resolveFormat("", nil); err != nil || got != config.FormatTable {
		t.Fatalf("nil config default = %q, %v", got, err)
	}
	if _, err := resolveFormat("yaml", &cfg); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
