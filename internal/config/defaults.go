package config

const (
	defaultPort            = 1778
	defaultConnectTimeout  = 10
	defaultRequestTimeout  = 0
	defaultTraceLogFile    = "/tmp/libkineto_activities.json"
	defaultTraceDurationMS = 500
	defaultProcessLimit    = 3
	defaultHistoryDir      = "~/.local/share/dynoctl"
	defaultHistoryEntries  = 500
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	fallbackHost           = "localhost"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Connection: Connection{
			Port:           defaultPort,
			ConnectTimeout: defaultConnectTimeout,
			RequestTimeout: defaultRequestTimeout,
		},
		Trace: Trace{
			LogFile:      defaultTraceLogFile,
			DurationMS:   defaultTraceDurationMS,
			ProcessLimit: defaultProcessLimit,
		},
		History: History{
			Enabled:    true,
			Dir:        defaultHistoryDir,
			MaxEntries: defaultHistoryEntries,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
