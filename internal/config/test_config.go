package config

import "time"

// TestConfig returns a config suitable for testing. Its toggles are never
// written to disk and every storage path is empty.
func TestConfig() *Config {
	return &Config{
		UI: defaultConfig().UI,
		API: APIConfig{
			BaseURL:       "http://127.0.0.1:0",
			SearchBaseURL: "http://127.0.0.1:0",
			Timeout:       2 * time.Second,
			UserAgent:     "hnterm-test/1.0",
			SearchHits:    10,
		},
		Log: LogConfig{Level: "off"},
	}
}
