// Package database provides access to the two SQLite databases the service
// reads from.
//
// The application database (this package plus the readingstate and bookmarks
// subpackages) holds users and per-user reading activity and is migrated by
// the service. The Calibre library database (the catalog subpackage) is owned
// by Calibre, opened read-only and never migrated.
//
// Each concern gets its own repository subpackage implementing the store
// interface its HTTP controller declares:
//
//	catalogRepo := catalog.NewRepository(cat.DB)
//	stateRepo := readingstate.NewRepository(db.DB)
//	bookmarkRepo := bookmarks.NewRepository(db.DB)
package database
