package config

const CurrentVersion = 1

const DefaultHistoryLimit = 500

// Config holds the preferences of the demo terminal. Empty fields fall back
// to the terminal's defaults.
type Config struct {
	Version      int    `json:"version"`
	Theme        string `json:"theme,omitempty"`
	LogLevel     string `json:"logLevel,omitempty"`
	Autoscroll   *bool  `json:"autoscroll,omitempty"`
	Autowrap     *bool  `json:"autowrap,omitempty"`
	Autocomplete string `json:"autocomplete,omitempty"`
	HistoryLimit int    `json:"historyLimit,omitempty"`
}

// HistoryEntry is one line of history.jsonl.
type HistoryEntry struct {
	Time int64  `json:"ts"`
	Text string `json:"text"`
}
