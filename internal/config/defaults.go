package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		History: HistoryConfig{
			Key:         "searchHistory",
			RecentLimit: 5,
		},
		Suggest: SuggestConfig{
			BaseURL:        "https://api.datamuse.com",
			Locale:         "en",
			Max:            0,
			DebounceMillis: 300,
			TimeoutSeconds: 10,
		},
		Dictionary: DictionaryConfig{
			BaseURL:        "https://api.dictionaryapi.dev/api/v2/entries/en",
			TimeoutSeconds: 10,
		},
		Translate: TranslateConfig{
			BaseURL:        "https://api.mymemory.translated.net",
			Source:         "en",
			Target:         "vi",
			TimeoutSeconds: 10,
		},
		Storage: StorageConfig{
			Path:              "~/.config/wordlens",
			SQLiteFile:        "wordlens.db",
			SQLiteJournalMode: "wal",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			File:       "wordlens.log",
			MaxSize:    10485760,
			MaxBackups: 3,
		},
		PopularWords: DefaultPopularWords(),
	}
}
