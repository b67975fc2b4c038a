package config

const (
	DefaultPort            = 38520
	DefaultPollSeconds     = 300
	DefaultRemoteTimeout   = 20
	DefaultArchiveFilename = "leadscout.db"
)

// ApplyDefaults fills zero values with usable defaults. Booleans are left
// alone; enabling a source is always an explicit choice.
func ApplyDefaults(cfg *Config) {
	if cfg.App.Port == 0 {
		cfg.App.Port = DefaultPort
	}
	if cfg.App.DataDir == "" {
		cfg.App.DataDir = "."
	}
	if cfg.Logging.Env == "" {
		cfg.Logging.Env = "dev"
	}
	if cfg.Sources.Remote.TimeoutSeconds == 0 {
		cfg.Sources.Remote.TimeoutSeconds = DefaultRemoteTimeout
	}
	if cfg.Sources.Remote.RatePerSec == 0 {
		cfg.Sources.Remote.RatePerSec = 1.0
	}
	if cfg.Sources.Remote.Burst == 0 {
		cfg.Sources.Remote.Burst = 2
	}
	if cfg.Sources.Mailbox.IMAPPort == 0 {
		cfg.Sources.Mailbox.IMAPPort = 993
	}
	if cfg.Sources.Mailbox.Mailbox == "" {
		cfg.Sources.Mailbox.Mailbox = "INBOX"
	}
	if cfg.Polling.IntervalSeconds == 0 {
		cfg.Polling.IntervalSeconds = DefaultPollSeconds
	}
	if cfg.Archive.Filename == "" {
		cfg.Archive.Filename = DefaultArchiveFilename
	}
}

// Default returns the config used when no file exists yet: sample source
// on, archive on, poller off.
func Default() Config {
	var cfg Config
	ApplyDefaults(&cfg)
	cfg.Sources.Sample.Enabled = true
	cfg.Archive.Enabled = true
	return cfg
}
