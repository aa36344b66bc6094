package config

// Default locations for local state
const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./recipefinder.db"

	// DefaultUploadsDir is the default directory for stored recipe images
	DefaultUploadsDir = "./data/uploads"
)
