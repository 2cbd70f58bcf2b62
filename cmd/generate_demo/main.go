// Command generate_demo creates a demo database with sample data from public domain books.
// Some rows are moved to the trash so the trash and restore endpoints have data.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"gorm.io/gorm/logger"

	"github.com/mrlokans/shelf/internal/database"
	"github.com/mrlokans/shelf/internal/database/books"
	"github.com/mrlokans/shelf/internal/database/tags"
	"github.com/mrlokans/shelf/internal/entities"
)

const defaultDemoDatabasePath = "./demo/demo.db"

// demoBook holds a book, its tag names and what to move to the trash.
type demoBook struct {
	Book     entities.Book
	TagNames []string

	Trashed           bool  // move the whole book to the trash
	TrashedHighlights []int // indexes into Book.Highlights
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath, logger.Warn)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	booksRepo := books.NewRepository(db.DB, db.Schema)
	tagsRepo := tags.NewRepository(db.DB, db.Schema)

	for _, demo := range publicDomainBooks() {
		book := demo.Book
		if err := booksRepo.CreateBook(&book); err != nil {
			log.Printf("Failed to save book %s: %v", book.Title, err)
			continue
		}

		for _, name := range demo.TagNames {
			if _, err := tagsRepo.AddTag(book.ID, name); err != nil {
				log.Printf("Failed to tag %s with %s: %v", book.Title, name, err)
			}
		}

		for _, i := range demo.TrashedHighlights {
			if err := booksRepo.DeleteHighlight(book.Highlights[i].ID); err != nil {
				log.Printf("Failed to trash highlight of %s: %v", book.Title, err)
			}
		}
		if demo.Trashed {
			if err := booksRepo.DeleteBook(book.ID); err != nil {
				log.Printf("Failed to trash %s: %v", book.Title, err)
			}
		}
	}

	log.Println("Demo database generated successfully!")
}

func highlights(base time.Time, texts ...string) []entities.Highlight {
	out := make([]entities.Highlight, 0, len(texts))
	for i, text := range texts {
		out = append(out, entities.Highlight{
			Text:          text,
			LocationType:  entities.LocationTypePage,
			LocationValue: i + 1,
			HighlightedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	return out
}

func publicDomainBooks() []demoBook {
	now := time.Now().Add(-24 * time.Hour)

	return []demoBook{
		{
			TagNames:          []string{"philosophy", "classic"},
			TrashedHighlights: []int{3},
			Book: entities.Book{
				Title:  "Meditations",
				Author: "Marcus Aurelius",
				Source: entities.Source{Name: "kindle"},
				Highlights: highlights(now,
					"You have power over your mind - not outside events. Realize this, and you will find strength.",
					"The happiness of your life depends upon the quality of your thoughts.",
					"Waste no more time arguing about what a good man should be. Be one.",
					"The soul becomes dyed with the color of its thoughts.",
				),
			},
		},
		{
			TagNames: []string{"philosophy", "classic"},
			Book: entities.Book{
				Title:  "Letters from a Stoic",
				Author: "Seneca",
				Source: entities.Source{Name: "apple_books"},
				Highlights: highlights(now.Add(time.Hour),
					"We suffer more often in imagination than in reality.",
					"It is not that we have a short time to live, but that we waste a lot of it.",
					"Difficulties strengthen the mind, as labor does the body.",
				),
			},
		},
		{
			TagNames: []string{"science", "classic"},
			Book: entities.Book{
				Title:  "On the Origin of Species",
				Author: "Charles Darwin",
				Source: entities.Source{Name: "kobo"},
				Highlights: highlights(now.Add(2*time.Hour),
					"It is not the strongest of the species that survives, nor the most intelligent that survives.",
					"There is grandeur in this view of life.",
				),
			},
		},
		{
			TagNames: []string{"fiction"},
			Trashed:  true,
			Book: entities.Book{
				Title:  "Pride and Prejudice",
				Author: "Jane Austen",
				Source: entities.Source{Name: "manual"},
				Highlights: highlights(now.Add(3*time.Hour),
					"It is a truth universally acknowledged, that a single man in possession of a good fortune, must be in want of a wife.",
				),
			},
		},
		{
			TagNames: []string{"nature"},
			Book: entities.Book{
				Title:  "Walden",
				Author: "Henry David Thoreau",
				Source: entities.Source{Name: "moonreader"},
			},
		},
	}
}
