// Package records loads export input from disk.
//
// JSON files hold an array of records using the domain types' json tags.
// Parquet files hold one row per record; dates are stored as YYYY-MM-DD
// strings so files written by other tools stay readable.
package records
