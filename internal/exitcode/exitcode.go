package exitcode

const (
	Success         = 0
	UsageError      = 1
	ConfigError     = 2
	DBConnError     = 3
	DataUnavailable = 4
	ExportError     = 5
)
