// Package census looks up triangulations in databases keyed by
// isomorphism signature.
//
// A Source answers Lookup(sig) with every entry stored under that
// signature, in insertion order; a miss is an empty slice, not an error.
// MemorySource keeps entries in a map, SQLiteSource reads a single-table
// SQLite file, and Multi chains several sources the way a search across
// all installed censuses would. Writer builds a database, Optimise rewrites
// one in sorted key order, and Server exposes any Source over HTTP.
package census
