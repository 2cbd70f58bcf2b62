package softdelete

import (
	"fmt"
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SoftDeleted scopes a query to the active rows of t:
//
//	db.Model(&Book{}).Scopes(softdelete.SoftDeleted(books)).Find(&out)
func SoftDeleted(t Table) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return scope(db, t, NotDeleted(t))
	}
}

// OnlyDeleted scopes a query to the soft-deleted rows of t.
func OnlyDeleted(t Table) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return scope(db, t, IsDeleted(t))
	}
}

// SoftFind looks a row up by primary key and drops it when it is
// soft-deleted. A slice key matches any of its elements.
func SoftFind(t Table, key interface{}) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if t.PrimaryKey == "" {
			db.AddError(fmt.Errorf("%w: %s", ErrNoPrimaryKey, t.Name))
			return db
		}
		return scope(db.Where(keyCondition(t, key)), t, NotDeleted(t))
	}
}

// SoftFilter applies a regular GORM condition and excludes soft-deleted rows.
// query and args accept anything db.Where does.
//
// Only the rows of t are scoped. Filtering a left-joined table this way turns
// the outer join into an inner one; use SoftLeftJoin for such tables instead.
func SoftFilter(t Table, query interface{}, args ...interface{}) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return scope(db.Where(query, args...), t, NotDeleted(t))
	}
}

func scope(db *gorm.DB, t Table, cond clause.Expression) *gorm.DB {
	if err := t.Validate(); err != nil {
		db.AddError(err)
		return db
	}
	if hasCondition(db, cond) {
		return db
	}
	return db.Where(cond)
}

func keyCondition(t Table, key interface{}) clause.Expression {
	col := t.PrimaryKeyColumn()
	rv := reflect.ValueOf(key)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			break
		}
		values := make([]interface{}, rv.Len())
		for i := range values {
			values[i] = rv.Index(i).Interface()
		}
		return clause.IN{Column: col, Values: values}
	}
	return clause.Eq{Column: col, Value: key}
}
