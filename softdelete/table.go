package softdelete

import (
	"fmt"

	"gorm.io/gorm/clause"
)

const (
	// DefaultDeletedColumn is the flag column assumed by Declare.
	DefaultDeletedColumn = "deleted"
	// DefaultPrimaryKey is the key column assumed by Declare and Plain.
	DefaultPrimaryKey = "id"
)

// Table associates a SQL table with its boolean deleted column.
//
// A false flag marks an active row, a true flag a soft-deleted one. A Table
// with an empty Deleted column is a plain table: it can sit on the left side
// of a soft join but cannot be soft-scoped itself.
type Table struct {
	Name       string
	PrimaryKey string
	Deleted    string
}

// Declare returns a soft-delete table keyed by "id" whose flag column is
// "deleted". Use WithDeleted and WithPrimaryKey for other column names.
func Declare(name string) Table {
	return Table{Name: name, PrimaryKey: DefaultPrimaryKey, Deleted: DefaultDeletedColumn}
}

// Plain returns a table without a deleted column.
func Plain(name string) Table {
	return Table{Name: name, PrimaryKey: DefaultPrimaryKey}
}

// WithDeleted returns a copy of t using column as its deleted flag.
func (t Table) WithDeleted(column string) Table {
	t.Deleted = column
	return t
}

// WithPrimaryKey returns a copy of t keyed by column.
func (t Table) WithPrimaryKey(column string) Table {
	t.PrimaryKey = column
	return t
}

func (t Table) IsSoftDelete() bool {
	return t.Deleted != ""
}

// Column qualifies name with the table name.
func (t Table) Column(name string) clause.Column {
	return clause.Column{Table: t.Name, Name: name}
}

func (t Table) DeletedColumn() clause.Column {
	return t.Column(t.Deleted)
}

func (t Table) PrimaryKeyColumn() clause.Column {
	return t.Column(t.PrimaryKey)
}

// Validate reports whether t can be soft-scoped.
func (t Table) Validate() error {
	if t.Name == "" {
		return ErrInvalidTable
	}
	if !t.IsSoftDelete() {
		return fmt.Errorf("%w: %s", ErrNotSoftDelete, t.Name)
	}
	return nil
}

func (t Table) String() string {
	if !t.IsSoftDelete() {
		return t.Name
	}
	return t.Name + "(" + t.Deleted + ")"
}
