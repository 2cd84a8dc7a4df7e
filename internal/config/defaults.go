package config

const (
	defaultLogDir               = "~/.local/share/napi/logs"
	defaultHistoryDir           = "~/.local/share/napi"
	defaultLanguage             = "pl"
	defaultWorkers              = 4
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultNapiprojektBaseURL   = "http://napiprojekt.pl"
	defaultNapiprojektClient    = "pynapi"
	defaultNapiprojektClientVer = "0"
	defaultNapisy24BaseURL      = "http://napisy24.pl"
	defaultNapisy24UserAgent    = "pynapi"
	defaultNapisy24APIKey       = "XaA!29OkF5Pe"
	defaultTimeoutSeconds       = 30
)

// defaultVideoExtensions lists the container formats considered video files
// during directory scans.
func defaultVideoExtensions() []string {
	return []string{
		".asf", ".avi", ".divx", ".m2ts", ".mkv", ".mp4",
		".mpeg", ".mpg", ".ogm", ".rm", ".rmvb", ".wmv",
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:     defaultLogDir,
			HistoryDir: defaultHistoryDir,
		},
		Downloads: Downloads{
			Language:        defaultLanguage,
			Workers:         defaultWorkers,
			Backup:          true,
			ConvertEncoding: true,
			VideoExtensions: defaultVideoExtensions(),
		},
		Napiprojekt: Napiprojekt{
			BaseURL:        defaultNapiprojektBaseURL,
			Client:         defaultNapiprojektClient,
			ClientVersion:  defaultNapiprojektClientVer,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Napisy24: Napisy24{
			Enabled:        true,
			BaseURL:        defaultNapisy24BaseURL,
			UserAgent:      defaultNapisy24UserAgent,
			APIKey:         defaultNapisy24APIKey,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
