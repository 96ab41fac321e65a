// Package store keeps the paste session in a SQLite database.
//
// A session is an ordered list of raw clipboard entries. Entries are stored
// unconverted so the whole session can be re-rendered whenever conversion
// options change. The database uses the pure Go modernc.org/sqlite driver
// in WAL mode, so several clip2md processes may read while one writes.
package store
