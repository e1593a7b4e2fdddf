package storage_test

import (
	"testing"

	"github.com/gnames/colex/pkg/checklist"
	"github.com/gnames/colex/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore keeps saved tables in memory and counts calls.
type memStore struct {
	tables map[string]*storage.Table
	saves  int
}

func newMemStore() *memStore {
	return &memStore{tables: make(map[string]*storage.Table)}
}

func (s *memStore) Load(bucket string) (*storage.Table, error) {
	return s.tables[bucket], nil
}

func (s *memStore) Save(bucket string, t *storage.Table) error {
	s.tables[bucket] = t
	s.saves++
	return nil
}

func (s *memStore) Reset() error {
	s.tables = make(map[string]*storage.Table)
	return nil
}

func (s *memStore) Close() error { return nil }

var bucketRanks = []checklist.Rank{checklist.RankClass, checklist.RankOrder}

func TestBucketKey(t *testing.T) {
	m := storage.NewMerger(newMemStore(), bucketRanks, nil)

	tests := []struct {
		msg     string
		lineage checklist.Lineage
		key     string
	}{
		{
			"both ranks present",
			checklist.Lineage{
				checklist.RankClass: "Mammalia",
				checklist.RankOrder: "Carnivora",
			},
			"Mammalia_Carnivora",
		},
		{
			"missing order",
			checklist.Lineage{checklist.RankClass: "Mammalia"},
			"Mammalia_none",
		},
		{
			"missing class",
			checklist.Lineage{checklist.RankOrder: "Carnivora"},
			"none_Carnivora",
		},
		{
			"empty lineage",
			checklist.Lineage{},
			"none_none",
		},
		{
			"space in name",
			checklist.Lineage{
				checklist.RankClass: "Mammalia",
				checklist.RankOrder: "incertae sedis",
			},
			"Mammalia_incertae-sedis",
		},
	}

	for _, v := range tests {
		assert.Equal(t, v.key, m.BucketKey(v.lineage), v.msg)
	}
}

func TestMergerPersist(t *testing.T) {
	store := newMemStore()
	m := storage.NewMerger(store, bucketRanks, []string{"eng", "spa"})

	rec := &checklist.SpeciesRecord{
		ID:             "C1",
		ScientificName: "Felis catus",
		Authorship:     "Linnaeus, 1758",
		Lineage: checklist.Lineage{
			checklist.RankClass: "Mammalia",
			checklist.RankOrder: "Carnivora",
			checklist.RankGenus: "Felis",
		},
	}
	rec.AddVernacular("eng", "Cat")

	err := m.Persist(rec)
	require.NoError(t, err)

	tbl, ok := store.tables["Mammalia_Carnivora"]
	require.True(t, ok)
	require.Equal(t, 1, tbl.Len())

	row, _ := tbl.Row("C1")
	assert.Equal(t, "Felis catus", row["species"])
	assert.Equal(t, "Linnaeus, 1758", row["authorship"])
	assert.Equal(t, "Felis", row["genus"])
	assert.Equal(t, "Cat", row["vernacular_eng"])
	assert.Empty(t, row["vernacular_spa"])
}

func TestMergerPersistMergesRepeat(t *testing.T) {
	store := newMemStore()
	m := storage.NewMerger(store, bucketRanks, []string{"eng"})

	lineage := checklist.Lineage{
		checklist.RankClass: "Mammalia",
		checklist.RankOrder: "Carnivora",
	}

	first := &checklist.SpeciesRecord{
		ID: "C1", ScientificName: "Felis catus", Lineage: lineage,
	}
	first.AddVernacular("eng", "Cat")
	require.NoError(t, m.Persist(first))

	second := &checklist.SpeciesRecord{
		ID: "C1", ScientificName: "Felis catus", Lineage: lineage,
	}
	second.AddVernacular("eng", "Housecat")
	require.NoError(t, m.Persist(second))

	tbl := store.tables["Mammalia_Carnivora"]
	require.Equal(t, 1, tbl.Len())
	row, _ := tbl.Row("C1")
	assert.Equal(t, "Cat, Housecat", row["vernacular_eng"])

	// Each Persist writes the table through.
	assert.Equal(t, 2, store.saves)
}

func TestMergerSeparateBuckets(t *testing.T) {
	store := newMemStore()
	m := storage.NewMerger(store, bucketRanks, nil)

	cat := &checklist.SpeciesRecord{
		ID: "C1", ScientificName: "Felis catus",
		Lineage: checklist.Lineage{
			checklist.RankClass: "Mammalia",
			checklist.RankOrder: "Carnivora",
		},
	}
	kiwi := &checklist.SpeciesRecord{
		ID: "B1", ScientificName: "Apteryx australis",
		Lineage: checklist.Lineage{
			checklist.RankClass: "Aves",
			checklist.RankOrder: "Apterygiformes",
		},
	}

	require.NoError(t, m.Persist(cat))
	require.NoError(t, m.Persist(kiwi))

	assert.Len(t, store.tables, 2)
	assert.Equal(t, 1, store.tables["Mammalia_Carnivora"].Len())
	assert.Equal(t, 1, store.tables["Aves_Apterygiformes"].Len())
}
