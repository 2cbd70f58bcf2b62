package cli

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"gorm.io/gorm/logger"

	"github.com/mrlokans/shelf/internal/config"
	"github.com/mrlokans/shelf/internal/database"
	"github.com/mrlokans/shelf/internal/database/trash"
)

type TrashCommand struct {
	DatabasePath string
	Verbose      bool

	Out io.Writer
}

func NewTrashCommand() *TrashCommand {
	return &TrashCommand{Out: os.Stdout}
}

func (cmd *TrashCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("trash", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Log SQL statements")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s trash [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List soft-deleted books, highlights and tags.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *TrashCommand) Run() error {
	db, err := openDatabase(cmd.DatabasePath, cmd.Verbose)
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	repo := trash.NewRepository(db.DB, db.Schema)

	stats, err := repo.Stats()
	if err != nil {
		return fmt.Errorf("failed to count rows: %w", err)
	}
	items, err := repo.List()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.Out, "=== Tables ===\n")
	for _, s := range stats {
		fmt.Fprintf(cmd.Out, "%-12s active: %-6d deleted: %-6d orphaned: %d\n", s.Table, s.Active, s.Deleted, s.Orphaned)
	}

	fmt.Fprintf(cmd.Out, "\n=== Trash ===\n")
	if len(items) == 0 {
		fmt.Fprintf(cmd.Out, "Trash is empty\n")
		return nil
	}
	for _, item := range items {
		fmt.Fprintf(cmd.Out, "%-9s #%-6d %s\n", item.Kind, item.ID, item.Label)
	}
	return nil
}

// openDatabase opens an existing database; commands never create one.
func openDatabase(path string, verbose bool) (*database.Database, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("database file does not exist: %s", path)
	}
	level := logger.Silent
	if verbose {
		level = logger.Info
	}
	db, err := database.NewDatabase(path, level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, nil
}

func closeDatabase(db *database.Database) {
	if err := db.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}
