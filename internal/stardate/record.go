package stardate

// RawScript holds the lines of one episode's script.
type RawScript struct {
	Episode int
	Lines   []string
}

// Row is a single match carried with the episode it came from.
type Row struct {
	Episode int
	Match   string
}

// Record is one cleaned stardate. Title is empty when the episode had no
// entry in the title map.
type Record struct {
	Episode  int     `json:"episode"`
	Season   int     `json:"season"`
	Title    string  `json:"episode_title,omitempty"`
	Stardate float64 `json:"stardate"`
	Decimal  int     `json:"stardate_decimal"`
}

// Titles maps episode numbers to episode titles.
type Titles map[int]string

// Lookup returns the title for episode, treating blank entries as absent.
func (t Titles) Lookup(episode int) (string, bool) {
	title, ok := t[episode]
	if !ok || title == "" {
		return "", false
	}
	return title, true
}

// Flatten expands scripts into one row per match, in script order.
func Flatten(scripts []RawScript) []Row {
	var rows []Row
	for _, script := range scripts {
		for _, match := range ExtractMatches(script.Lines) {
			rows = append(rows, Row{Episode: script.Episode, Match: match})
		}
	}
	return rows
}

// Join attaches titles to records with left-join semantics: every record is
// returned, in order, whether or not its episode has a title.
func Join(records []Record, titles Titles) []Record {
	out := make([]Record, len(records))
	for i, rec := range records {
		if title, ok := titles.Lookup(rec.Episode); ok {
			rec.Title = title
		} else {
			rec.Title = ""
		}
		out[i] = rec
	}
	return out
}
