// ABOUTME: Scan and bind helpers for nullable columns
// ABOUTME: Timestamps are integer Unix seconds in the database
package sqlite

import (
	"database/sql"
	"time"
)

// nullString converts an empty string to sql.NullString.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// nullInt64 converts a zero id to sql.NullInt64.
func nullInt64(n int64) sql.NullInt64 {
	if n == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: n, Valid: true}
}

// nullFloat converts an optional float to sql.NullFloat64.
func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// timeFromUnix converts Unix seconds to a time.Time.
func timeFromUnix(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

// timePtrFromNull converts a nullable Unix column to *time.Time.
func timePtrFromNull(n sql.NullInt64) *time.Time {
	if !n.Valid {
		return nil
	}
	t := timeFromUnix(n.Int64)
	return &t
}

// floatPtrFromNull converts a nullable float column to *float64.
func floatPtrFromNull(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	f := n.Float64
	return &f
}
