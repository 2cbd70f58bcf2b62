package softdelete

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MarkDeleted flags the active rows of t matching key as deleted and returns
// how many rows changed. db should be a fresh session (not a chained query).
func MarkDeleted(db *gorm.DB, t Table, key interface{}) (int64, error) {
	return setFlag(db, t, key, true)
}

// Restore clears the deleted flag on the soft-deleted rows matching key.
func Restore(db *gorm.DB, t Table, key interface{}) (int64, error) {
	return setFlag(db, t, key, false)
}

func setFlag(db *gorm.DB, t Table, key interface{}, deleted bool) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	if t.PrimaryKey == "" {
		return 0, fmt.Errorf("%w: %s", ErrNoPrimaryKey, t.Name)
	}

	current := NotDeleted(t)
	if !deleted {
		current = IsDeleted(t)
	}
	result := db.Table(t.Name).
		Where(keyCondition(t, key)).
		Where(current).
		Update(t.Deleted, deleted)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update %s: %w", t, result.Error)
	}
	return result.RowsAffected, nil
}

// Purge physically removes every soft-deleted row of t.
func Purge(db *gorm.DB, t Table) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	result := db.Exec("DELETE FROM ? WHERE ?", clause.Table{Name: t.Name}, IsDeleted(t))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to purge %s: %w", t, result.Error)
	}
	return result.RowsAffected, nil
}

// Count returns the number of active and soft-deleted rows of t.
func Count(db *gorm.DB, t Table) (active, deleted int64, err error) {
	if err = t.Validate(); err != nil {
		return
	}
	if err = db.Table(t.Name).Scopes(SoftDeleted(t)).Count(&active).Error; err != nil {
		err = fmt.Errorf("failed to count %s: %w", t, err)
		return
	}
	if err = db.Table(t.Name).Scopes(OnlyDeleted(t)).Count(&deleted).Error; err != nil {
		err = fmt.Errorf("failed to count %s: %w", t, err)
	}
	return
}
