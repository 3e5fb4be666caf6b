// Package sqlite implements a SQLite-backed storage.Repository.
package sqlite

// Config holds SQLite repository configuration derived from storage.Config.
type Config struct {
	// DSN is a SQLite connection string or plain file path, e.g.:
	//   "file:arxiv.db?cache=shared"
	//   "arxiv.db"
	//   ":memory:"
	DSN string
}
