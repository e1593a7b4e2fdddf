package storage_test

import (
	"testing"

	"github.com/gnames/colex/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testColumns = []string{"id", "species", "vernacular_eng"}

func TestTableMergeNew(t *testing.T) {
	tbl := storage.NewTable(testColumns)
	tbl.Merge(storage.Row{
		"id": "1", "species": "Felis catus", "vernacular_eng": "Cat",
	}, []string{"vernacular_eng"})

	assert.Equal(t, 1, tbl.Len())
	row, ok := tbl.Row("1")
	require.True(t, ok)
	assert.Equal(t, "Cat", row["vernacular_eng"])
}

func TestTableMergeAppend(t *testing.T) {
	tbl := storage.NewTable(testColumns)
	appendCols := []string{"vernacular_eng"}

	tbl.Merge(storage.Row{
		"id": "1", "species": "Felis catus", "vernacular_eng": "Cat",
	}, appendCols)
	tbl.Merge(storage.Row{
		"id": "1", "species": "Felis catus", "vernacular_eng": "Housecat",
	}, appendCols)

	require.Equal(t, 1, tbl.Len())
	row, _ := tbl.Row("1")
	assert.Equal(t, "Cat, Housecat", row["vernacular_eng"])
}

func TestTableMergeIdempotent(t *testing.T) {
	tbl := storage.NewTable(testColumns)
	appendCols := []string{"vernacular_eng"}
	row := storage.Row{
		"id": "1", "species": "Felis catus", "vernacular_eng": "Cat, Housecat",
	}

	tbl.Merge(row, appendCols)
	tbl.Merge(row, appendCols)
	tbl.Merge(row, appendCols)

	require.Equal(t, 1, tbl.Len())
	stored, _ := tbl.Row("1")
	assert.Equal(t, "Cat, Housecat", stored["vernacular_eng"])
}

func TestTableMergeKeepsStored(t *testing.T) {
	tbl := storage.NewTable(testColumns)

	tbl.Merge(storage.Row{"id": "1", "species": "Felis catus"}, nil)
	tbl.Merge(storage.Row{"id": "1", "species": "Felis silvestris"}, nil)

	row, _ := tbl.Row("1")
	// Non-append columns are first-write-wins.
	assert.Equal(t, "Felis catus", row["species"])
}

func TestTableMergeFillsEmpty(t *testing.T) {
	tbl := storage.NewTable(testColumns)

	tbl.Merge(storage.Row{"id": "1"}, nil)
	tbl.Merge(storage.Row{"id": "1", "species": "Felis catus"}, nil)

	row, _ := tbl.Row("1")
	assert.Equal(t, "Felis catus", row["species"])
}

func TestTableMergeDistinctKeys(t *testing.T) {
	tbl := storage.NewTable(testColumns)

	tbl.Merge(storage.Row{"id": "1", "species": "Felis catus"}, nil)
	tbl.Merge(storage.Row{"id": "2", "species": "Panthera leo"}, nil)

	assert.Equal(t, 2, tbl.Len())
}
