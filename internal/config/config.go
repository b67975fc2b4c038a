package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// RoleRule tags a person lead when any needle appears in the headline.
type RoleRule struct {
	Tag string   `yaml:"tag" json:"tag"`
	Any []string `yaml:"any" json:"any"`
}

// SavedSearch is a search the poller replays on every cycle.
type SavedSearch struct {
	Kind     string `yaml:"kind" json:"kind"` // person | company
	Keywords string `yaml:"keywords" json:"keywords"`
	Location string `yaml:"location,omitempty" json:"location,omitempty"`
	Industry string `yaml:"industry,omitempty" json:"industry,omitempty"`
	Size     string `yaml:"size,omitempty" json:"size,omitempty"`
	Limit    int    `yaml:"limit,omitempty" json:"limit,omitempty"`
	AutoTag  bool   `yaml:"auto_tag,omitempty" json:"auto_tag,omitempty"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Logging struct {
		Env   string `yaml:"env" json:"env"`
		Level string `yaml:"level" json:"level"`
	} `yaml:"logging" json:"logging"`

	Sources struct {
		Sample struct {
			Enabled bool  `yaml:"enabled" json:"enabled"`
			Seed    int64 `yaml:"seed" json:"seed"`
		} `yaml:"sample" json:"sample"`

		Remote struct {
			Enabled        bool    `yaml:"enabled" json:"enabled"`
			BaseURL        string  `yaml:"base_url" json:"base_url"`
			Username       string  `yaml:"username" json:"username"`
			TimeoutSeconds int     `yaml:"timeout_seconds" json:"timeout_seconds"`
			RatePerSec     float64 `yaml:"rate_per_sec" json:"rate_per_sec"`
			Burst          int     `yaml:"burst" json:"burst"`
		} `yaml:"remote" json:"remote"`

		Mailbox struct {
			Enabled          bool     `yaml:"enabled" json:"enabled"`
			IMAPHost         string   `yaml:"imap_host" json:"imap_host"`
			IMAPPort         int      `yaml:"imap_port" json:"imap_port"`
			Username         string   `yaml:"username" json:"username"`
			Mailbox          string   `yaml:"mailbox" json:"mailbox"`
			SearchSubjectAny []string `yaml:"search_subject_any" json:"search_subject_any"`
		} `yaml:"mailbox" json:"mailbox"`
	} `yaml:"sources" json:"sources"`

	Polling struct {
		Enabled         bool          `yaml:"enabled" json:"enabled"`
		IntervalSeconds int           `yaml:"interval_seconds" json:"interval_seconds"`
		Searches        []SavedSearch `yaml:"searches" json:"searches"`
	} `yaml:"polling" json:"polling"`

	Archive struct {
		Enabled  bool   `yaml:"enabled" json:"enabled"`
		Filename string `yaml:"filename" json:"filename"`
	} `yaml:"archive" json:"archive"`

	Tagging struct {
		RoleRules []RoleRule `yaml:"role_rules" json:"role_rules"`
	} `yaml:"tagging" json:"tagging"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	ApplyDefaults(&cfg)
	return cfg, nil
}
