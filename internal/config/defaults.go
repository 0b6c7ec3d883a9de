package config

const (
	defaultConfigPath        = "~/.config/stardate/config.toml"
	defaultScriptsDir        = "~/.local/share/stardate/scripts"
	defaultDataDir           = "~/.local/share/stardate"
	defaultLogDir            = "~/.local/share/stardate/logs"
	defaultFilePattern       = "%d.txt"
	defaultEncoding          = EncodingUTF8
	defaultWorkers           = 4
	maxWorkers               = 64
	defaultEpisodesURL       = "https://en.wikipedia.org/wiki/List_of_Star_Trek:_The_Next_Generation_episodes"
	defaultEpisodesSelector  = "td.summary"
	defaultEpisodesUserAgent = "stardate/dev"
	defaultEpisodesTimeout   = 15
	defaultOutputFormat      = FormatTable
	defaultColor             = ColorAuto
	defaultChartWidth        = 60
	defaultChartHeight       = 12
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Supported script encodings.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
	EncodingISO88591    = "iso-8859-1"
)

// Supported output formats.
const (
	FormatTable    = "table"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ScriptsDir: defaultScriptsDir,
			DataDir:    defaultDataDir,
			LogDir:     defaultLogDir,
		},
		Corpus: Corpus{
			FilePattern: defaultFilePattern,
			Encoding:    defaultEncoding,
			Workers:     defaultWorkers,
		},
		Episodes: Episodes{
			Enabled:        true,
			SourceURL:      defaultEpisodesURL,
			Selector:       defaultEpisodesSelector,
			UserAgent:      defaultEpisodesUserAgent,
			TimeoutSeconds: defaultEpisodesTimeout,
			CacheEnabled:   true,
		},
		Output: Output{
			Format:      defaultOutputFormat,
			Color:       defaultColor,
			ChartWidth:  defaultChartWidth,
			ChartHeight: defaultChartHeight,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
