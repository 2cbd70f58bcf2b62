// Package softdelete scopes GORM queries to rows whose boolean deleted flag
// is unset.
//
// Tables keep soft-deleted rows and mark them with a flag column instead of
// removing them. The package does not install global callbacks: each query
// opts in through scopes, so an unscoped query still sees every row.
//
// # Declaring tables
//
// A Table names the flag column of a SQL table:
//
//	books := softdelete.Declare("books")                      // books.deleted
//	tags := softdelete.Declare("tags").WithDeleted("is_removed")
//
// or the Registry derives it from GORM models:
//
//	reg := softdelete.NewRegistry(db)
//	err := reg.Register(&Book{}, &Tag{})
//	books := reg.MustTable(&Book{})
//
// # Query rules
//
//	SoftDeleted(t)          WHERE NOT t.deleted
//	SoftFind(t, key)        WHERE t.id = key AND NOT t.deleted
//	SoftFilter(t, q, args)  WHERE (q) AND NOT t.deleted
//	SoftJoin(r, kind)       kind JOIN r ON (on AND NOT r.deleted)
//
// The join rule puts the predicate in the ON clause. Filtering a left-joined
// table in WHERE would drop every left row whose related row is
// soft-deleted, turning the outer join into an inner join.
//
//	rel, _ := reg.Relation(&Book{}, &Highlight{})
//	db.Model(&Book{}).
//		Scopes(softdelete.SoftDeleted(books), softdelete.SoftLeftJoin(rel)).
//		Select("books.title, highlights.text").
//		Scan(&rows)
//
// Applying the same scope twice adds its predicate once.
//
// Nested joins, where the right side is itself a join expression, are not
// supported. Joins can be chained from a table joined earlier.
package softdelete
