// Package storage implements the output side of a run: partitioning
// species records into buckets and merging them into persistent
// tables without duplication.
//
// The persistence mechanics live behind the BucketStore interface so
// a flat-file store and an indexed store are interchangeable without
// touching the merge logic.
package storage

import (
	"slices"
	"strings"
)

// Row is one table row, keyed by column name. Absent columns read as
// empty strings.
type Row map[string]string

// KeyColumn is the column that identifies a species within a bucket.
const KeyColumn = "id"

// Table is an in-memory output table with a unique key per row.
type Table struct {
	Columns []string
	Rows    []Row

	index map[string]int
}

// NewTable creates an empty table with the given header.
func NewTable(columns []string) *Table {
	return &Table{
		Columns: slices.Clone(columns),
		index:   make(map[string]int),
	}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Row returns the row stored under the given key.
func (t *Table) Row(key string) (Row, bool) {
	i, ok := t.index[key]
	if !ok {
		return nil, false
	}
	return t.Rows[i], true
}

// Append adds a row without merge checks. Used when loading a
// persisted table; the loader is trusted to hold unique keys.
func (t *Table) Append(row Row) {
	t.index[row[KeyColumn]] = len(t.Rows)
	t.Rows = append(t.Rows, row)
}

// Merge inserts the row, or folds it into the existing row with the
// same key. Columns listed in appendColumns accumulate values with a
// ", " separator, skipping values already present, so merging the same
// row twice changes nothing. All other columns keep their stored value
// and are only filled in when currently empty.
func (t *Table) Merge(row Row, appendColumns []string) {
	i, ok := t.index[row[KeyColumn]]
	if !ok {
		t.Append(row)
		return
	}

	stored := t.Rows[i]
	appendable := make(map[string]struct{}, len(appendColumns))
	for _, c := range appendColumns {
		appendable[c] = struct{}{}
	}

	for _, col := range t.Columns {
		val := row[col]
		if val == "" {
			continue
		}
		if _, ok := appendable[col]; ok {
			stored[col] = appendJoined(stored[col], val)
			continue
		}
		if stored[col] == "" {
			stored[col] = val
		}
	}
}

// appendJoined merges two ", "-joined value lists, keeping encounter
// order and dropping values the stored list already has.
func appendJoined(stored, incoming string) string {
	if stored == "" {
		return incoming
	}
	have := strings.Split(stored, ", ")
	for _, v := range strings.Split(incoming, ", ") {
		if v == "" || slices.Contains(have, v) {
			continue
		}
		have = append(have, v)
	}
	return strings.Join(have, ", ")
}
