// ABOUTME: Versioned schema migrations embedded from migrations/NNN_name.sql.
// ABOUTME: Tracks the applied version in schema_version and refuses newer databases.

package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migration is a single schema change.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// readMigrations parses the embedded migration files sorted by version.
func readMigrations(fsys fs.FS) ([]Migration, error) {
	files, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	var migrations []Migration
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		parts := strings.SplitN(file.Name(), "_", 2)
		if len(parts) < 2 {
			return nil, fmt.Errorf("invalid migration filename %s (expected NNN_name.sql)", file.Name())
		}
		version, err := strconv.Atoi(parts[0])
		if err != nil || version < 1 {
			return nil, fmt.Errorf("invalid version number in filename %s", file.Name())
		}

		content, err := fs.ReadFile(fsys, file.Name())
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", file.Name(), err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    strings.TrimSuffix(parts[1], ".sql"),
			SQL:     string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	for i := 1; i < len(migrations); i++ {
		if migrations[i].Version == migrations[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", migrations[i].Version)
		}
	}

	return migrations, nil
}

func embeddedMigrations() ([]Migration, error) {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	return readMigrations(sub)
}

// SchemaVersion returns the applied schema version, 0 for a fresh database.
func (d *DB) SchemaVersion(ctx context.Context) (int, error) {
	if _, err := d.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`); err != nil {
		return 0, fmt.Errorf("ensure schema_version table: %w", err)
	}

	var version int
	err := d.db.QueryRowContext(ctx, "SELECT version FROM schema_version").Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get schema version: %w", err)
	}
	return version, nil
}

// LatestSchemaVersion returns the highest migration version this binary ships.
func LatestSchemaVersion() (int, error) {
	migrations, err := embeddedMigrations()
	if err != nil {
		return 0, err
	}
	if len(migrations) == 0 {
		return 0, nil
	}
	return migrations[len(migrations)-1].Version, nil
}

// migrate applies every pending migration, each in its own transaction
// together with its version bump. It returns the migrations applied.
func (d *DB) migrate(logFn func(Migration)) ([]Migration, error) {
	ctx := context.Background()

	current, err := d.SchemaVersion(ctx)
	if err != nil {
		return nil, err
	}

	migrations, err := embeddedMigrations()
	if err != nil {
		return nil, err
	}
	if len(migrations) == 0 {
		return nil, nil
	}

	latest := migrations[len(migrations)-1].Version
	if current > latest {
		return nil, fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}

	var applied []Migration
	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if err := d.applyMigration(ctx, m); err != nil {
			return applied, err
		}
		if logFn != nil {
			logFn(m)
		}
		applied = append(applied, m)
	}
	return applied, nil
}

func (d *DB) applyMigration(ctx context.Context, m Migration) error {
	return d.InTx(ctx, func(c *Conn) error {
		if _, err := c.q.ExecContext(ctx, m.SQL); err != nil {
			return fmt.Errorf("apply migration %03d_%s: %w", m.Version, m.Name, err)
		}
		if _, err := c.q.ExecContext(ctx, "DELETE FROM schema_version"); err != nil {
			return fmt.Errorf("clear schema version: %w", err)
		}
		if _, err := c.q.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
		return nil
	})
}
