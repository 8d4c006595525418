package repository

import (
	"context"
	"database/sql"
)

// DBTX is the subset of *sqlx.DB and *sqlx.Tx the adapters use.
type DBTX interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const (
	// DefaultListLimit applies when a caller passes a non-positive limit.
	DefaultListLimit = 50
	// MaxListLimit caps a single listing.
	MaxListLimit = 100
)
