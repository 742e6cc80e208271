package smoke

import "time"

// Run configuration defaults.
const (
	DefaultRounds  = 1
	DefaultWorkers = 4
	DefaultTimeout = 10 * time.Second

	workerChannelMultiplier = 2
	percentageMultiplier    = 100
)

// File permission constants.
const (
	logFilePermission   = 0600
	directoryPermission = 0750
)
