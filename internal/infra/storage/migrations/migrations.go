package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/m04kA/SMC-ReservationService/pkg/sqlbuilder"
)

//go:embed postgres/*.sql sqlite/*.sql
var migrationsFS embed.FS

// ErrUnsupportedDialect возвращается для неизвестного диалекта
var ErrUnsupportedDialect = errors.New("migrations: unsupported dialect")

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

type migration struct {
	Name    string
	Content string
}

// Run применяет все ещё не применённые миграции диалекта по порядку имён файлов.
// Возвращает количество применённых миграций.
func Run(ctx context.Context, db *sql.DB, dialect string, logger Logger) (int, error) {
	if dialect != sqlbuilder.DialectPostgres && dialect != sqlbuilder.DialectSQLite {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedDialect, dialect)
	}

	if err := createMigrationsTable(ctx, db); err != nil {
		return 0, fmt.Errorf("creating migrations table: %w", err)
	}

	applied, err := appliedMigrations(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("getting applied migrations: %w", err)
	}

	pending, err := migrationFiles(dialect)
	if err != nil {
		return 0, fmt.Errorf("reading migration files: %w", err)
	}

	builder := sqlbuilder.MustNew(dialect)
	count := 0
	for _, m := range pending {
		if applied[m.Name] {
			continue
		}

		logger.Info("Applying migration: %s", m.Name)
		if err := applyMigration(ctx, db, builder.Insert("schema_migrations").Columns("name").Values(m.Name), m); err != nil {
			return count, fmt.Errorf("applying migration %s: %w", m.Name, err)
		}
		count++
	}

	return count, nil
}

func createMigrationsTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

func appliedMigrations(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT name FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		applied[name] = true
	}

	return applied, rows.Err()
}

func migrationFiles(dialect string) ([]migration, error) {
	var migrations []migration

	err := fs.WalkDir(migrationsFS, dialect, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".sql") {
			return nil
		}

		content, err := migrationsFS.ReadFile(p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", p, err)
		}

		migrations = append(migrations, migration{Name: path.Base(p), Content: string(content)})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Name < migrations[j].Name
	})

	return migrations, nil
}

type sqlizer interface {
	ToSql() (string, []interface{}, error)
}

func applyMigration(ctx context.Context, db *sql.DB, record sqlizer, m migration) error {
	query, args, err := record.ToSql()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.Content); err != nil {
		return fmt.Errorf("executing SQL: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("recording migration: %w", err)
	}

	return tx.Commit()
}
