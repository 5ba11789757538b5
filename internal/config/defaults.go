package config

const (
	defaultDataDir             = "~/.local/share/shorttrack"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultNotifyTimeout       = 10
	defaultDeadlineDays        = 3
	defaultReminderWindowHours = 24
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			Assigned:       true,
			Completed:      true,
			Validated:      true,
			Rejected:       true,
			Published:      true,
			Deadlines:      true,
			Errors:         true,
		},
		Workflow: Workflow{
			DefaultDeadlineDays: defaultDeadlineDays,
			ReminderWindowHours: defaultReminderWindowHours,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
