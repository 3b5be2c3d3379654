package config

import "github.com/kotoba/wakachi/internal/scoring"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Lexicon.DatabasePath == "" {
		cfg.Lexicon.DatabasePath = "/usr/local/var/wakachi/data/lexicon.db"
	}
	if cfg.Analysis.DefaultLimit == 0 {
		cfg.Analysis.DefaultLimit = 5
	}
	if cfg.Analysis.MaxLimit == 0 {
		cfg.Analysis.MaxLimit = 20
	}
	if cfg.Analysis.MaxInputRunes == 0 {
		cfg.Analysis.MaxInputRunes = 1000
	}
	if cfg.Scoring == nil {
		cfg.Scoring = scoring.DefaultConfig()
	}
}
