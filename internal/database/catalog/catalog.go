// Package catalog reads book metadata from a Calibre library database.
//
// The database is produced and maintained by Calibre itself; this service
// treats it as an immutable input. The connection is opened read-only so a
// misbehaving query can never corrupt the library.
package catalog

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// requiredTables is the minimal schema surface the repository depends on.
var requiredTables = []string{
	"books", "authors", "tags", "series", "ratings",
	"languages", "publishers", "data",
}

type Catalog struct {
	DB   *gorm.DB
	path string
}

// Open connects to the Calibre database at path in read-only mode and
// validates that the expected tables exist.
func Open(path string) (*Catalog, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("catalog database not found: %s", path)
	}

	db, err := gorm.Open(sqlite.Open(path+"?mode=ro"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping catalog database: %w", err)
	}

	c := &Catalog{DB: db, path: path}
	if err := c.Validate(); err != nil {
		sqlDB.Close()
		return nil, err
	}

	log.Printf("Catalog database opened read-only at %s", path)
	return c, nil
}

// Validate checks that the required Calibre tables are present.
func (c *Catalog) Validate() error {
	for _, table := range requiredTables {
		var name string
		err := c.DB.Raw(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name).Error
		if err != nil {
			return fmt.Errorf("failed to check table %q: %w", table, err)
		}
		if name == "" {
			return fmt.Errorf("required catalog table %q not found", table)
		}
	}
	return nil
}

func (c *Catalog) Close() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping verifies the underlying connection is still usable.
func (c *Catalog) Ping() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
