package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"stardate/internal/config"
	"stardate/internal/corpus"
	"stardate/internal/stardate"
)

// CheckReadableDir verifies that the directory exists and can be listed and read.
func CheckReadableDir(name, path string) Result {
	return checkDirectoryAccess(name, path, unix.R_OK|unix.X_OK, "read ok")
}

// CheckWritableDir verifies that the directory exists and is readable/writable.
func CheckWritableDir(name, path string) Result {
	return checkDirectoryAccess(name, path, unix.R_OK|unix.W_OK|unix.X_OK, "read/write ok")
}

func checkDirectoryAccess(name, path string, mode uint32, okDetail string) Result {
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, okDetail)}
}

// CheckScripts verifies that a script file exists for every episode.
func CheckScripts(cfg *config.Config) Result {
	const name = "Script corpus"

	missing, err := corpus.NewLoader(cfg, nil).Missing()
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	if len(missing) == 0 {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d of %d scripts present", stardate.EpisodeCount, stardate.EpisodeCount)}
	}
	return Result{Name: name, Detail: fmt.Sprintf("%d of %d scripts missing (%s)",
		len(missing), stardate.EpisodeCount, summarizeEpisodes(missing))}
}

// CheckEpisodeSource verifies that the episode list page answers.
func CheckEpisodeSource(ctx context.Context, sourceURL, userAgent string) Result {
	const name = "Episode list"

	sourceURL = strings.TrimSpace(sourceURL)
	if sourceURL == "" {
		return Result{Name: name, Detail: "missing url"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client := &http.Client{Timeout: 5 * time.Second}
	req, err := http.NewRequestWithContext(checkCtx, http.MethodHead, sourceURL, nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("check failed (%v)", err)}
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: summarizeNetError(err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		return Result{Name: name, Passed: true, Detail: "Reachable"}
	default:
		return Result{Name: name, Detail: fmt.Sprintf("check failed (%d)", resp.StatusCode)}
	}
}

func summarizeNetError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "check timed out (episode list unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "check timed out (episode list unreachable)"
	}
	return err.Error()
}

// summarizeEpisodes lists the first few episode numbers and counts the rest.
func summarizeEpisodes(episodes []int) string {
	const shown = 5
	parts := make([]string, 0, shown+1)
	for i, ep := range episodes {
		if i == shown {
			parts = append(parts, fmt.Sprintf("+%d more", len(episodes)-shown))
			break
		}
		parts = append(parts, fmt.Sprint(ep))
	}
	return strings.Join(parts, ", ")
}
