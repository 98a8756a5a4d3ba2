// Package connections provides the SQLite persistence layer for saved
// remote-desktop connection profiles.
//
// The column list is fixed at compile time (see columns and scanConnection);
// each models.Connection field maps to exactly one column. Timestamps are
// stored as RFC 3339 text in UTC. Passwords are stored exactly as handed
// in: the repository never sees plaintext.
//
// Typical Usage
//
//	repo := connections.NewSQLiteRepository(db)
//	id, _ := repo.Create(ctx, &conn)
//	list, _ := repo.Search(ctx, "web")
//	_ = repo.TouchLastConnected(ctx, id, time.Now())
package connections
