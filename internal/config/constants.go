package config

const (
	// DefaultDatabasePath is the default path for the reading log database
	DefaultDatabasePath = "./bookshelf.db"

	// DefaultExportDir is where markdown notes land unless EXPORT_DIR is set
	DefaultExportDir = "./export"

	DefaultPort            = 8188
	DefaultDispatchWorkers = 4
)
