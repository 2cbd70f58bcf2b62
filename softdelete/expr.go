package softdelete

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// flag renders a boolean column as a predicate. It is a comparable value so
// a statement can be checked for an identical predicate before adding it.
type flag struct {
	Column  clause.Column
	Negated bool
}

func (f flag) Build(builder clause.Builder) {
	if f.Negated {
		builder.WriteString("NOT ")
	}
	builder.WriteQuoted(f.Column)
}

// NegationBuild lets clause.Not flip the predicate instead of wrapping it.
func (f flag) NegationBuild(builder clause.Builder) {
	flag{Column: f.Column, Negated: !f.Negated}.Build(builder)
}

// NotDeleted is the exclusion predicate: NOT "table"."deleted".
func NotDeleted(t Table) clause.Expression {
	return flag{Column: t.DeletedColumn(), Negated: true}
}

// IsDeleted matches soft-deleted rows only: "table"."deleted".
func IsDeleted(t Table) clause.Expression {
	return flag{Column: t.DeletedColumn()}
}

// hasCondition reports whether the statement's WHERE clause already holds cond.
func hasCondition(db *gorm.DB, cond clause.Expression) bool {
	want, ok := cond.(flag)
	if !ok {
		return false
	}
	c, ok := db.Statement.Clauses["WHERE"]
	if !ok {
		return false
	}
	where, ok := c.Expression.(clause.Where)
	if !ok {
		return false
	}
	for _, expr := range where.Exprs {
		if got, ok := expr.(flag); ok && got == want {
			return true
		}
	}
	return false
}
