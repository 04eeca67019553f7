package config

// Default returns the repository default configuration.
func Default() Config {
	return Config{
		TMDB: TMDB{
			BaseURL:      "https://api.themoviedb.org/3",
			Language:     "en-US",
			IncludeAdult: true,
			Concurrency:  10,
			RatePerSec:   40,
		},
		Sync: Sync{
			Pattern: -1,
		},
		Paths: Paths{
			DataDir:   "~/.local/share/moviesync",
			OutputDir: ".",
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}
