// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BookStore: Book reads, trash and restore (internal/http/stores.go)
//   - HighlightStore: Highlight reads, trash and restore (internal/http/stores.go)
//   - TagStore: Book tags (internal/http/stores.go)
//   - TrashStore: Listing and purging soft-deleted rows (internal/http/stores.go)
//
// ## Background Jobs
//
//   - Purger: Empties the trash on a schedule (internal/scheduler/purge.go)
//
// # Adding a New Soft-Deleted Domain
//
//  1. Add a Deleted bool field to the model (or tag a custom column with
//     softdelete:"flag")
//
//  2. Register the model in database.NewSchema and derive the relations it
//     joins through
//
//  3. Create sub-package internal/database/<domain>/ whose reads use the
//     softdelete scopes:
//
//     func (r *Repository) GetByID(id uint) (*entities.Thing, error) {
//         var thing entities.Thing
//         err := r.db.Scopes(softdelete.SoftFind(r.schema.Things, id)).First(&thing).Error
//         ...
//     }
//
//  4. Include the table in trash.Repository.Purge, children before parents
//
//  5. Add compile-time check:
//
//     var _ http.ThingStore = (*things.Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the checks in this codebase.
package interfaces
