package config

const (
	defaultMkvmergeBinary  = "mkvmerge"
	defaultTimeoutSeconds  = 0
	defaultCacheDir        = "~/.cache/mkvmux/identify"
	defaultCacheMaxAgeDays = 30
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Mkvmerge: Mkvmerge{
			Binary:         defaultMkvmergeBinary,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		IdentifyCache: IdentifyCache{
			Enabled:    true,
			Dir:        defaultCacheDir,
			MaxAgeDays: defaultCacheMaxAgeDays,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
