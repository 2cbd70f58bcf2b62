package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/shelf/internal/config"
	"github.com/mrlokans/shelf/internal/database/trash"
)

type PurgeCommand struct {
	DatabasePath string
	DryRun       bool
	Verbose      bool

	Out io.Writer
}

func NewPurgeCommand() *PurgeCommand {
	return &PurgeCommand{Out: os.Stdout}
}

func (cmd *PurgeCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("purge", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Show what would be removed without removing it")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Log SQL statements")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s purge [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Permanently remove everything in the trash.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s purge -dry-run\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s purge -db ./shelf.db\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *PurgeCommand) Run() error {
	db, err := openDatabase(cmd.DatabasePath, cmd.Verbose)
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	repo := trash.NewRepository(db.DB, db.Schema)

	if cmd.DryRun {
		stats, err := repo.Stats()
		if err != nil {
			return fmt.Errorf("failed to count rows: %w", err)
		}
		var total int64
		for _, s := range stats {
			if s.Orphaned > 0 {
				fmt.Fprintf(cmd.Out, "Would remove %d rows from %s (%d of deleted books)\n", s.Purgeable(), s.Table, s.Orphaned)
			} else {
				fmt.Fprintf(cmd.Out, "Would remove %d rows from %s\n", s.Purgeable(), s.Table)
			}
			total += s.Purgeable()
		}
		fmt.Fprintf(cmd.Out, "Dry run: %d rows would be removed\n", total)
		return nil
	}

	purged, err := repo.Purge()
	if err != nil {
		return fmt.Errorf("failed to purge trash: %w", err)
	}
	fmt.Fprintf(cmd.Out, "Removed %d rows from trash\n", purged)
	return nil
}
