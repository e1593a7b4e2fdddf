package storage

import (
	"strings"

	"github.com/gnames/colex/pkg/checklist"
)

// Merger derives the bucket key for each species record and folds the
// record into that bucket's table. Tables are created lazily on first
// write and persisted in full after every merge.
//
// Merger is not safe for concurrent use; a run has exactly one writer.
type Merger struct {
	store       BucketStore
	bucketRanks []checklist.Rank
	rankColumns []checklist.Rank
	languages   []string

	columns    []string
	appendCols []string
	tables     map[string]*Table
}

// NewMerger creates a Merger writing through the given store.
// bucketRanks select the lineage fields that form the bucket key;
// languages define one vernacular column per allowed language code.
func NewMerger(
	store BucketStore,
	bucketRanks []checklist.Rank,
	languages []string,
) *Merger {
	rankCols := checklist.LineageRanks()

	columns := []string{KeyColumn, "species", "authorship"}
	for _, r := range rankCols {
		columns = append(columns, r.String())
	}
	columns = append(columns, "distribution", "environments")
	var appendCols []string
	for _, lang := range languages {
		col := "vernacular_" + lang
		columns = append(columns, col)
		appendCols = append(appendCols, col)
	}

	return &Merger{
		store:       store,
		bucketRanks: bucketRanks,
		rankColumns: rankCols,
		languages:   languages,
		columns:     columns,
		appendCols:  appendCols,
		tables:      make(map[string]*Table),
	}
}

// Persist merges the record into its bucket and saves the whole
// updated table.
func (m *Merger) Persist(rec *checklist.SpeciesRecord) error {
	bucket := m.BucketKey(rec.Lineage)
	table, err := m.table(bucket)
	if err != nil {
		return err
	}

	table.Merge(m.row(rec), m.appendCols)

	return m.store.Save(bucket, table)
}

// BucketKey joins the record's values for the configured bucket ranks
// with underscores. Missing ranks contribute the placeholder "none" so
// different gaps do not collapse into one bucket name.
func (m *Merger) BucketKey(lineage checklist.Lineage) string {
	parts := make([]string, len(m.bucketRanks))
	for i, r := range m.bucketRanks {
		name := lineage.Name(r)
		if name == "" {
			name = "none"
		}
		parts[i] = sanitize(name)
	}
	return strings.Join(parts, "_")
}

func (m *Merger) table(bucket string) (*Table, error) {
	if t, ok := m.tables[bucket]; ok {
		return t, nil
	}
	t, err := m.store.Load(bucket)
	if err != nil {
		return nil, err
	}
	if t == nil {
		t = NewTable(m.columns)
	}
	m.tables[bucket] = t
	return t, nil
}

func (m *Merger) row(rec *checklist.SpeciesRecord) Row {
	row := Row{
		KeyColumn:      rec.ID,
		"species":      rec.ScientificName,
		"authorship":   rec.Authorship,
		"distribution": rec.Distribution,
		"environments": strings.Join(rec.Environments, ", "),
	}
	for _, r := range m.rankColumns {
		row[r.String()] = rec.Lineage.Name(r)
	}
	for _, lang := range rec.Languages() {
		row["vernacular_"+lang] = rec.Vernacular(lang)
	}
	return row
}

// sanitize makes a lineage name safe for file and table names.
func sanitize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(" ", "-", "/", "-").Replace(s)
	if s == "" {
		return "none"
	}
	return s
}
