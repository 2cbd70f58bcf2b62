package softdelete

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Author struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"size:100"`
	Deleted bool   `gorm:"not null;default:false"`
	Posts   []Post
}

type Post struct {
	ID       uint   `gorm:"primaryKey"`
	AuthorID uint   `gorm:"index"`
	Title    string `gorm:"size:200"`
	Deleted  bool   `gorm:"not null;default:false"`
	Labels   []Label
}

type Label struct {
	ID      uint   `gorm:"primaryKey"`
	PostID  uint   `gorm:"index"`
	Name    string `gorm:"size:50"`
	Removed bool   `gorm:"column:is_removed;not null;default:false" softdelete:"flag"`
}

// authorPost is the row shape of author/post join queries.
type authorPost struct {
	Name  string
	Title *string
}

var (
	authors = Declare("authors")
	posts   = Declare("posts")
	labels  = Declare("labels").WithDeleted("is_removed")

	authorPosts = JoinOn(authors, posts, "id", "author_id")
	postLabels  = JoinOn(posts, labels, "id", "post_id")
)

// setupTestDB creates a fresh database with the test schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Author{}, &Post{}, &Label{}))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// seedLibrary creates:
//
//	alice (active): "a1" active with label "go", "a2" deleted
//	bob   (active): "b1" deleted
//	carol (deleted): "c1" active
func seedLibrary(t *testing.T, db *gorm.DB) {
	t.Helper()
	rows := []Author{
		{Name: "alice", Posts: []Post{
			{Title: "a1", Labels: []Label{{Name: "go"}, {Name: "sql", Removed: true}}},
			{Title: "a2", Deleted: true},
		}},
		{Name: "bob", Posts: []Post{{Title: "b1", Deleted: true}}},
		{Name: "carol", Deleted: true, Posts: []Post{{Title: "c1"}}},
	}
	require.NoError(t, db.Create(&rows).Error)
}

func findAuthor(t *testing.T, db *gorm.DB, name string) Author {
	t.Helper()
	var a Author
	require.NoError(t, db.Where("name = ?", name).First(&a).Error)
	return a
}

func titles(rows []authorPost) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.Title == nil {
			out = append(out, r.Name+":-")
			continue
		}
		out = append(out, r.Name+":"+*r.Title)
	}
	return out
}
