package util

import (
	"database/sql"
)

// StringPtrToNullString converts an optional string to sql.NullString.
// Nil and empty strings are stored as NULL.
func StringPtrToNullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// NullStringToStringPtr is the inverse of StringPtrToNullString.
func NullStringToStringPtr(ns sql.NullString) *string {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	s := ns.String
	return &s
}

// ClampLimit bounds a page size to [1, max], substituting def for
// non-positive values.
func ClampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
