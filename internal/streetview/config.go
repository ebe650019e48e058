package streetview

import "time"

// Config holds settings for the Street View client.
// The API key and base URL are injected here rather than read from the
// environment inside the client, so tests can point at a fake server.
type Config struct {
	APIKey    string
	BaseURL   string
	ImageSize string
	Timeout   time.Duration
}

// DefaultConfig returns default Street View client settings
func DefaultConfig() Config {
	return Config{
		BaseURL:   "https://maps.googleapis.com/maps/api/streetview",
		ImageSize: "300x300",
		Timeout:   15 * time.Second,
	}
}
