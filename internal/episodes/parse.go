package episodes

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"stardate/internal/stardate"
)

// titleQuotes are stripped from both ends of a scraped title. The reference
// page wraps every title in straight quotes; typographic ones show up in
// saved copies.
const titleQuotes = "\"“”"

// ParseTitles extracts titles from an HTML document. Every element matching
// selector is one episode, numbered from 1 in document order. Footnote
// markers are removed. Elements with no text still take a number so later
// episodes keep their position; they are recorded as blank titles, which
// Titles.Lookup treats as absent.
func ParseTitles(r io.Reader, selector string) (stardate.Titles, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil, fmt.Errorf("title selector required")
	}
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse episode list: %w", err)
	}

	titles := stardate.Titles{}
	doc.Find(selector).Each(func(i int, s *goquery.Selection) {
		s.Find("sup").Remove()
		titles[i+1] = cleanTitle(s.Text())
	})
	if len(titles) == 0 {
		return nil, stardate.Wrap(stardate.ErrNotFound, "episodes", "parse",
			fmt.Sprintf("no elements match selector %q", selector), nil)
	}
	return titles, nil
}

func cleanTitle(raw string) string {
	title := strings.Join(strings.Fields(raw), " ")
	title = strings.Trim(title, titleQuotes)
	return strings.TrimSpace(title)
}

// LoadHTMLFile parses a saved copy of the episode list page.
func LoadHTMLFile(path, selector string) (stardate.Titles, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open episode list: %w", err)
	}
	defer file.Close()
	return ParseTitles(file, selector)
}
