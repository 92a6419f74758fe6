package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mkarpov/readshelf/internal/config"
	"github.com/mkarpov/readshelf/internal/database/catalog"
)

// CatalogCheckCommand validates a Calibre library database and prints
// basic figures about it.
type CatalogCheckCommand struct {
	CatalogPath string
}

// NewCatalogCheckCommand creates a new CatalogCheckCommand
func NewCatalogCheckCommand() *CatalogCheckCommand {
	return &CatalogCheckCommand{}
}

// ParseFlags parses command line flags
func (cmd *CatalogCheckCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("catalog-check", flag.ExitOnError)

	fs.StringVar(&cmd.CatalogPath, "catalog", config.DefaultCatalogPath, "Path to the Calibre metadata.db file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s catalog-check [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Open a Calibre library database read-only and verify it is usable.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s catalog-check -catalog ~/Calibre/metadata.db\n", os.Args[0])
	}

	return fs.Parse(args)
}

// Run executes the catalog-check command
func (cmd *CatalogCheckCommand) Run() error {
	absPath, err := filepath.Abs(cmd.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for catalog: %w", err)
	}

	cat, err := catalog.Open(absPath)
	if err != nil {
		return err
	}
	defer cat.Close()

	repo := catalog.NewRepository(cat.DB)
	count, err := repo.Count()
	if err != nil {
		return fmt.Errorf("failed to count books: %w", err)
	}

	fmt.Printf("Catalog OK: %s\n", absPath)
	fmt.Printf("Books: %d\n", count)
	return nil
}
