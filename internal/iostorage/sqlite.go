package iostorage

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gnames/colex/pkg/storage"
	"github.com/gnames/gnsys"
	_ "modernc.org/sqlite" // SQLite driver
)

const tablePrefix = "species_"

type sqliteStore struct {
	db   *sql.DB
	path string
}

// NewSQLite creates a BucketStore backed by one SQLite database file,
// colex.db in the given directory, with one table per bucket. It
// satisfies the same contract as the CSV store, so merge logic is
// unaffected by the backend choice.
func NewSQLite(dir string) (storage.BucketStore, error) {
	if err := gnsys.MakeDir(dir); err != nil {
		return nil, StoreOpenError(dir, err)
	}
	path := filepath.Join(dir, "colex.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, StoreOpenError(path, err)
	}
	return &sqliteStore{db: db, path: path}, nil
}

func tableName(bucket string) string {
	return tablePrefix + strings.ReplaceAll(bucket, `"`, "")
}

// Load reads a bucket table back. A missing table means the bucket
// does not exist yet.
func (s *sqliteStore) Load(bucket string) (*storage.Table, error) {
	name := tableName(bucket)

	var exists int
	q := `SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`
	if err := s.db.QueryRow(q, name).Scan(&exists); err != nil {
		return nil, StoreLoadError(s.path, err)
	}
	if exists == 0 {
		return nil, nil
	}

	rows, err := s.db.Query(fmt.Sprintf(`SELECT * FROM %q`, name))
	if err != nil {
		return nil, StoreLoadError(s.path, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, StoreLoadError(s.path, err)
	}

	table := storage.NewTable(columns)
	vals := make([]sql.NullString, len(columns))
	ptrs := make([]any, len(columns))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err = rows.Scan(ptrs...); err != nil {
			return nil, StoreLoadError(s.path, err)
		}
		row := make(storage.Row, len(columns))
		for i, col := range columns {
			row[col] = vals[i].String
		}
		table.Append(row)
	}
	if err = rows.Err(); err != nil {
		return nil, StoreLoadError(s.path, err)
	}
	return table, nil
}

// Save rewrites the whole bucket table inside one transaction.
func (s *sqliteStore) Save(bucket string, t *storage.Table) error {
	name := tableName(bucket)

	tx, err := s.db.Begin()
	if err != nil {
		return StoreSaveError(s.path, err)
	}
	defer tx.Rollback()

	if _, err = tx.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %q`, name)); err != nil {
		return StoreSaveError(s.path, err)
	}

	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		constraint := " TEXT"
		if c == storage.KeyColumn {
			constraint = " TEXT PRIMARY KEY"
		}
		cols[i] = fmt.Sprintf("%q%s", c, constraint)
	}
	createQ := fmt.Sprintf(
		`CREATE TABLE %q (%s)`, name, strings.Join(cols, ", "),
	)
	if _, err = tx.Exec(createQ); err != nil {
		return StoreSaveError(s.path, err)
	}

	placeholders := strings.TrimSuffix(
		strings.Repeat("?,", len(t.Columns)), ",",
	)
	insertQ := fmt.Sprintf(`INSERT INTO %q VALUES (%s)`, name, placeholders)
	stmt, err := tx.Prepare(insertQ)
	if err != nil {
		return StoreSaveError(s.path, err)
	}
	defer stmt.Close()

	for _, row := range t.Rows {
		vals := make([]any, len(t.Columns))
		for i, col := range t.Columns {
			vals[i] = row[col]
		}
		if _, err = stmt.Exec(vals...); err != nil {
			return StoreSaveError(s.path, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return StoreSaveError(s.path, err)
	}
	return nil
}

// Reset drops all bucket tables.
func (s *sqliteStore) Reset() error {
	q := `SELECT name FROM sqlite_master WHERE type = 'table' AND name LIKE ?`
	rows, err := s.db.Query(q, tablePrefix+"%")
	if err != nil {
		return StoreResetError(s.path, err)
	}
	var names []string
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			rows.Close()
			return StoreResetError(s.path, err)
		}
		names = append(names, name)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return StoreResetError(s.path, err)
	}
	rows.Close()

	for _, name := range names {
		if _, err = s.db.Exec(
			fmt.Sprintf(`DROP TABLE IF EXISTS %q`, name),
		); err != nil {
			return StoreResetError(s.path, err)
		}
	}
	return nil
}

// Close closes the underlying database.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}
