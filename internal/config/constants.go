package config

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./shelf.db"

	// DefaultPurgeSchedule empties the trash daily at 03:00
	DefaultPurgeSchedule = "0 3 * * *"
)
