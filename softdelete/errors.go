package softdelete

import "errors"

var (
	// ErrInvalidTable is returned for a declaration without a table name.
	ErrInvalidTable = errors.New("softdelete: table name is empty")

	// ErrNotSoftDelete is returned when a soft operation targets a table
	// that has no deleted column.
	ErrNotSoftDelete = errors.New("softdelete: table has no deleted column")

	// ErrNoPrimaryKey is returned by key lookups on a table without a primary key.
	ErrNoPrimaryKey = errors.New("softdelete: table has no primary key")

	ErrNotRegistered          = errors.New("softdelete: model is not registered")
	ErrNoDeletedColumn        = errors.New("softdelete: model has no deleted column")
	ErrMultipleDeletedColumns = errors.New("softdelete: model has more than one deleted column")
	ErrDeletedNotBool         = errors.New("softdelete: deleted column must be a boolean")
	ErrCompositePrimaryKey    = errors.New("softdelete: model must have exactly one primary key")

	ErrNoRelation          = errors.New("softdelete: no relation between models")
	ErrAmbiguousRelation   = errors.New("softdelete: more than one relation between models")
	ErrUnsupportedRelation = errors.New("softdelete: relation cannot be joined")
	ErrEmptyOnClause       = errors.New("softdelete: join has no ON clause")
	ErrDuplicateJoin       = errors.New("softdelete: table is already joined differently")
)
