package db

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/terraincognita07/ictus/migrations"
	"gorm.io/gorm"
)

var (
	migrationNamePattern  = regexp.MustCompile(`^(\d+)_.*\.sql$`)
	addColumnPattern      = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+([^\s]+)\s+ADD\s+COLUMN\s+([^\s]+)\b`)
	errEmptyMigrationFile = errors.New("migration has no SQL statements")
)

type migrationFile struct {
	version string
	order   int
	name    string
	body    string
}

// applyEmbeddedMigrations runs every pending migration in version order and
// returns the names of the ones it applied.
func applyEmbeddedMigrations(database *gorm.DB) ([]string, error) {
	if err := database.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`).Error; err != nil {
		return nil, fmt.Errorf("create schema_migrations table: %w", err)
	}

	files, err := readMigrationFiles(migrations.Files)
	if err != nil {
		return nil, err
	}

	var versions []string
	if err := database.Table("schema_migrations").Pluck("version", &versions).Error; err != nil {
		return nil, fmt.Errorf("load applied migration versions: %w", err)
	}
	done := make(map[string]bool, len(versions))
	for _, version := range versions {
		done[version] = true
	}

	applied := make([]string, 0, len(files))
	for _, file := range files {
		if done[file.version] {
			continue
		}
		if err := runMigration(database, file); err != nil {
			return applied, err
		}
		applied = append(applied, file.name)
	}
	return applied, nil
}

func readMigrationFiles(source fs.FS) ([]migrationFile, error) {
	entries, err := fs.ReadDir(source, ".")
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}

	files := make([]migrationFile, 0, len(entries))
	byVersion := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := migrationNamePattern.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}

		version := match[1]
		if previous, duplicate := byVersion[version]; duplicate {
			return nil, fmt.Errorf("duplicate migration version %s in %s and %s", version, previous, entry.Name())
		}
		byVersion[version] = entry.Name()

		order, err := strconv.Atoi(version)
		if err != nil {
			return nil, fmt.Errorf("parse migration version from %s: %w", entry.Name(), err)
		}
		body, err := fs.ReadFile(source, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		files = append(files, migrationFile{version: version, order: order, name: entry.Name(), body: string(body)})
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].order == files[j].order {
			return files[i].name < files[j].name
		}
		return files[i].order < files[j].order
	})
	return files, nil
}

func runMigration(database *gorm.DB, file migrationFile) error {
	statements := splitStatements(file.body)
	if len(statements) == 0 {
		return fmt.Errorf("%s: %w", file.name, errEmptyMigrationFile)
	}

	return database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range statements {
			exists, err := columnAlreadyAdded(tx, statement)
			if err != nil {
				return fmt.Errorf("inspect migration %s: %w", file.name, err)
			}
			if exists {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s statement %q: %w", file.name, statement, err)
			}
		}

		if err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`, file.version, file.name).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", file.name, err)
		}
		return nil
	})
}

// splitStatements splits on ';'. Migration bodies must not contain semicolons inside literals.
func splitStatements(body string) []string {
	statements := make([]string, 0)
	for _, part := range strings.Split(body, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

// columnAlreadyAdded lets ADD COLUMN migrations run against databases where the
// column was created by hand or by an older schema.
func columnAlreadyAdded(database *gorm.DB, statement string) (bool, error) {
	match := addColumnPattern.FindStringSubmatch(statement)
	if match == nil {
		return false, nil
	}

	table := unquoteIdentifier(match[1])
	column := unquoteIdentifier(match[2])

	var columns []struct {
		Name string `gorm:"column:name"`
	}
	query := fmt.Sprintf(`PRAGMA table_info("%s")`, strings.ReplaceAll(table, `"`, `""`))
	if err := database.Raw(query).Scan(&columns).Error; err != nil {
		return false, fmt.Errorf("load table_info for %s: %w", table, err)
	}
	for _, existing := range columns {
		if strings.EqualFold(existing.Name, column) {
			return true, nil
		}
	}
	return false, nil
}

func unquoteIdentifier(identifier string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(identifier), "\"`[]"))
}
