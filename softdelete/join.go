package softdelete

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JoinKind string

const (
	InnerJoin JoinKind = "INNER"
	LeftJoin  JoinKind = "LEFT"
)

// Relation describes how Left joins Right. On holds the join condition
// without any soft-delete predicate; the soft joins add it.
type Relation struct {
	Left  Table
	Right Table
	On    []clause.Expression
}

// JoinOn declares a relation joined on left.leftColumn = right.rightColumn.
func JoinOn(left, right Table, leftColumn, rightColumn string) Relation {
	return Relation{
		Left:  left,
		Right: right,
		On:    []clause.Expression{clause.Eq{Column: left.Column(leftColumn), Value: right.Column(rightColumn)}},
	}
}

// Join adds a plain join of the given kind. Soft-deleted right-hand rows are
// joined like any other row.
func Join(r Relation, kind JoinKind) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(r.On) == 0 {
			db.AddError(fmt.Errorf("%w: %s", ErrEmptyOnClause, r.Right.Name))
			return db
		}
		return addJoin(db, joinExpr{kind: kind, table: r.Right.Name, on: r.On})
	}
}

// SoftJoin adds a join whose ON clause also requires the right-hand row to be
// active. The predicate lives in the ON clause, not in WHERE, so a left join
// still returns the left row with NULL right-hand columns when the related row
// is soft-deleted.
func SoftJoin(r Relation, kind JoinKind) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if err := r.Right.Validate(); err != nil {
			db.AddError(err)
			return db
		}
		if len(r.On) == 0 {
			db.AddError(fmt.Errorf("%w: %s", ErrEmptyOnClause, r.Right.Name))
			return db
		}
		on := make([]clause.Expression, 0, len(r.On)+1)
		on = append(on, r.On...)
		on = append(on, NotDeleted(r.Right))
		return addJoin(db, joinExpr{kind: kind, table: r.Right.Name, on: on})
	}
}

func SoftInnerJoin(r Relation) func(*gorm.DB) *gorm.DB {
	return SoftJoin(r, InnerJoin)
}

func SoftLeftJoin(r Relation) func(*gorm.DB) *gorm.DB {
	return SoftJoin(r, LeftJoin)
}

// addJoin renders the join with the statement's quoting and hands it to
// db.Joins. An identical join already on the statement is not added again; a
// different join to the same table is an error, since both would share the
// table's name in the query.
func addJoin(db *gorm.DB, j joinExpr) *gorm.DB {
	sql, vars := render(db, j)
	key := joinSettingKey + j.table
	if existing, ok := db.Statement.Settings.Load(key); ok {
		if existing != sql {
			db.AddError(fmt.Errorf("%w: %s", ErrDuplicateJoin, j.table))
		}
		return db
	}
	db.Statement.Settings.Store(key, sql)
	return db.Joins(sql, vars...)
}

const joinSettingKey = "softdelete:join:"

type joinExpr struct {
	kind  JoinKind
	table string
	on    []clause.Expression
}

func (j joinExpr) Build(builder clause.Builder) {
	if j.kind != "" {
		builder.WriteString(string(j.kind))
		builder.WriteByte(' ')
	}
	builder.WriteString("JOIN ")
	builder.WriteQuoted(clause.Table{Name: j.table})
	builder.WriteString(" ON ")

	// Where.Build reorders its slice in place.
	exprs := make([]clause.Expression, len(j.on))
	copy(exprs, j.on)
	clause.Where{Exprs: exprs}.Build(builder)
}

// render builds expr into SQL with '?' placeholders, which is what db.Joins
// expects; the dialector binds them again when the statement is built.
func render(db *gorm.DB, expr clause.Expression) (string, []interface{}) {
	b := &sqlBuilder{stmt: &gorm.Statement{DB: db, Table: db.Statement.Table}}
	expr.Build(b)
	return b.sql.String(), b.vars
}

type sqlBuilder struct {
	stmt *gorm.Statement
	sql  strings.Builder
	vars []interface{}
}

func (b *sqlBuilder) WriteByte(c byte) error {
	return b.sql.WriteByte(c)
}

func (b *sqlBuilder) WriteString(s string) (int, error) {
	return b.sql.WriteString(s)
}

func (b *sqlBuilder) WriteQuoted(field interface{}) {
	b.stmt.QuoteTo(&b.sql, field)
}

func (b *sqlBuilder) AddVar(writer clause.Writer, vars ...interface{}) {
	for idx, v := range vars {
		if idx > 0 {
			writer.WriteByte(',')
		}
		switch v := v.(type) {
		case clause.Column, clause.Table:
			b.stmt.QuoteTo(writer, v)
		case clause.Expression:
			v.Build(b)
		default:
			b.vars = append(b.vars, v)
			writer.WriteByte('?')
		}
	}
}

func (b *sqlBuilder) AddError(err error) error {
	return b.stmt.DB.AddError(err)
}
