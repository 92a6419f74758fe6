package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./readshelf.db"

	// DefaultCatalogPath is the default path for the Calibre library database
	DefaultCatalogPath = "./metadata.db"
)

// APIVersion is reported by the health endpoint and prefixes all API routes.
const APIVersion = "v2"
