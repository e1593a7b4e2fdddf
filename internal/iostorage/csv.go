// Package iostorage implements storage.BucketStore over two backends:
// one delimited file per bucket, and a single SQLite database with one
// table per bucket.
package iostorage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/colex/pkg/storage"
	"github.com/gnames/gnsys"
)

const filePrefix = "species_"

type csvStore struct {
	dir string
}

// NewCSV creates a BucketStore that keeps one CSV file per bucket in
// the given directory, named species_<bucket>.csv.
func NewCSV(dir string) (storage.BucketStore, error) {
	if err := gnsys.MakeDir(dir); err != nil {
		return nil, StoreOpenError(dir, err)
	}
	return &csvStore{dir: dir}, nil
}

func (s *csvStore) path(bucket string) string {
	return filepath.Join(s.dir, filePrefix+bucket+".csv")
}

// Load reads a bucket file back into a Table. A missing file means the
// bucket does not exist yet.
func (s *csvStore) Load(bucket string) (*storage.Table, error) {
	path := s.path(bucket)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, StoreLoadError(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, StoreLoadError(path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	table := storage.NewTable(records[0])
	for _, rec := range records[1:] {
		row := make(storage.Row, len(table.Columns))
		for i, col := range table.Columns {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		table.Append(row)
	}
	return table, nil
}

// Save rewrites the whole bucket file. The write goes through a
// temporary file and rename so an interrupted run never leaves a
// truncated table behind.
func (s *csvStore) Save(bucket string, t *storage.Table) error {
	path := s.path(bucket)
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return StoreSaveError(path, err)
	}

	w := csv.NewWriter(f)
	if err = w.Write(t.Columns); err != nil {
		f.Close()
		return StoreSaveError(path, err)
	}
	for _, row := range t.Rows {
		rec := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			rec[i] = row[col]
		}
		if err = w.Write(rec); err != nil {
			f.Close()
			return StoreSaveError(path, err)
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		f.Close()
		return StoreSaveError(path, err)
	}
	if err = f.Close(); err != nil {
		return StoreSaveError(path, err)
	}

	if err = os.Rename(tmp, path); err != nil {
		return StoreSaveError(path, err)
	}
	return nil
}

// Reset removes all bucket files from the data directory.
func (s *csvStore) Reset() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return StoreResetError(s.dir, err)
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) ||
			!strings.HasSuffix(name, ".csv") {
			continue
		}
		if err = os.Remove(filepath.Join(s.dir, name)); err != nil {
			return StoreResetError(s.dir, err)
		}
	}
	return nil
}

// Close implements BucketStore; the CSV store holds no resources.
func (s *csvStore) Close() error {
	return nil
}
