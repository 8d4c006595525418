package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"

	"topic-quiz/internal/logger"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	checkMigrationsTableQuery  = `SELECT COUNT(*) FROM user_tables WHERE table_name = 'SCHEMA_MIGRATIONS'`
	createMigrationsTableQuery = `CREATE TABLE schema_migrations (version NUMBER(19) NOT NULL, applied_at TIMESTAMP DEFAULT SYSTIMESTAMP NOT NULL, CONSTRAINT pk_schema_migrations PRIMARY KEY (version))`
	appliedVersionsQuery       = `SELECT version FROM schema_migrations ORDER BY version`
	recordVersionQuery         = `INSERT INTO schema_migrations (version) VALUES (:1)`
	removeVersionQuery         = `DELETE FROM schema_migrations WHERE version = :1`
)

// Migrator applies the embedded SQL migrations. Files are read through a
// golang-migrate source driver and executed statement by statement, since
// Oracle rejects multi-statement Exec calls.
type Migrator struct {
	db  *sqlx.DB
	src source.Driver
}

func NewMigrator(db *sqlx.DB) (*Migrator, error) {
	return newMigrator(db, migrationsFS, "migrations")
}

func newMigrator(db *sqlx.DB, fsys fs.FS, dir string) (*Migrator, error) {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("could not open migrations: %w", err)
	}
	return &Migrator{db: db, src: src}, nil
}

func (m *Migrator) Close() error {
	return m.src.Close()
}

// Up applies every pending migration in version order and returns how many
// were applied.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return 0, err
	}
	done := make(map[uint]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}

	count := 0
	version, err := m.src.First()
	for err == nil {
		if !done[version] {
			r, identifier, readErr := m.src.ReadUp(version)
			if readErr != nil && !errors.Is(readErr, fs.ErrNotExist) {
				return count, fmt.Errorf("could not read migration %d: %w", version, readErr)
			}
			if readErr == nil {
				if err := m.apply(ctx, r, version, identifier); err != nil {
					return count, err
				}
				if _, err := m.db.ExecContext(ctx, recordVersionQuery, version); err != nil {
					return count, fmt.Errorf("could not record migration %d: %w", version, err)
				}
				count++
				logger.Get().Info("Executed migration", zap.Uint("version", version), zap.String("name", identifier))
			}
		}
		version, err = m.src.Next(version)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return count, fmt.Errorf("could not list migrations: %w", err)
	}
	return count, nil
}

// Down reverts up to steps applied migrations, newest first.
func (m *Migrator) Down(ctx context.Context, steps int) (int, error) {
	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return 0, err
	}
	sort.Slice(applied, func(i, j int) bool { return applied[i] > applied[j] })

	count := 0
	for _, version := range applied {
		if count >= steps {
			break
		}
		r, identifier, err := m.src.ReadDown(version)
		if err != nil {
			return count, fmt.Errorf("could not read down migration %d: %w", version, err)
		}
		if err := m.apply(ctx, r, version, identifier); err != nil {
			return count, err
		}
		if _, err := m.db.ExecContext(ctx, removeVersionQuery, version); err != nil {
			return count, fmt.Errorf("could not remove migration record %d: %w", version, err)
		}
		count++
		logger.Get().Info("Reverted migration", zap.Uint("version", version), zap.String("name", identifier))
	}
	return count, nil
}

// Version returns the highest applied version, or ok=false when none is.
func (m *Migrator) Version(ctx context.Context) (version uint, ok bool, err error) {
	applied, err := m.appliedVersions(ctx)
	if err != nil || len(applied) == 0 {
		return 0, false, err
	}
	return applied[len(applied)-1], true, nil
}

func (m *Migrator) apply(ctx context.Context, r io.ReadCloser, version uint, identifier string) error {
	defer r.Close()
	body, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("could not read migration %d: %w", version, err)
	}
	for _, stmt := range splitStatements(string(body)) {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("could not execute migration %d (%s): %w", version, identifier, err)
		}
	}
	return nil
}

func (m *Migrator) appliedVersions(ctx context.Context) ([]uint, error) {
	if err := m.ensureMigrationsTable(ctx); err != nil {
		return nil, err
	}
	var rows []int64
	if err := m.db.SelectContext(ctx, &rows, appliedVersionsQuery); err != nil {
		return nil, fmt.Errorf("could not read applied migrations: %w", err)
	}
	versions := make([]uint, len(rows))
	for i, v := range rows {
		versions[i] = uint(v)
	}
	return versions, nil
}

func (m *Migrator) ensureMigrationsTable(ctx context.Context) error {
	var n int
	if err := m.db.GetContext(ctx, &n, checkMigrationsTableQuery); err != nil {
		return fmt.Errorf("could not check migrations table: %w", err)
	}
	if n > 0 {
		return nil
	}
	if _, err := m.db.ExecContext(ctx, createMigrationsTableQuery); err != nil {
		return fmt.Errorf("could not create migrations table: %w", err)
	}
	return nil
}

// splitStatements splits a migration file on ";" line endings and drops
// the terminators.
func splitStatements(body string) []string {
	var stmts []string
	for _, part := range strings.Split(body, ";") {
		stmt := strings.TrimSpace(part)
		if stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
