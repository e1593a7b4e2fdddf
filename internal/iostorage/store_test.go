package iostorage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/colex/internal/iostorage"
	"github.com/gnames/colex/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stores = []struct {
	msg string
	new func(dir string) (storage.BucketStore, error)
}{
	{"csv", iostorage.NewCSV},
	{"sqlite", iostorage.NewSQLite},
}

func sampleTable() *storage.Table {
	t := storage.NewTable([]string{"id", "species", "vernacular_eng"})
	t.Append(storage.Row{
		"id": "S1", "species": "Felis catus", "vernacular_eng": "Cat",
	})
	t.Append(storage.Row{
		"id": "S2", "species": "Panthera leo",
	})
	return t
}

func TestStoreRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	for _, v := range stores {
		t.Run(v.msg, func(t *testing.T) {
			store, err := v.new(t.TempDir())
			require.NoError(t, err)
			defer store.Close()

			require.NoError(t, store.Save("Mammalia_Carnivora", sampleTable()))

			loaded, err := store.Load("Mammalia_Carnivora")
			require.NoError(t, err)
			require.NotNil(t, loaded)

			assert.Equal(
				t, []string{"id", "species", "vernacular_eng"}, loaded.Columns,
			)
			require.Equal(t, 2, loaded.Len())

			row, ok := loaded.Row("S1")
			require.True(t, ok)
			assert.Equal(t, "Felis catus", row["species"])
			assert.Equal(t, "Cat", row["vernacular_eng"])

			row2, ok := loaded.Row("S2")
			require.True(t, ok)
			assert.Empty(t, row2["vernacular_eng"])
		})
	}
}

func TestStoreLoadMissingBucket(t *testing.T) {
	for _, v := range stores {
		t.Run(v.msg, func(t *testing.T) {
			store, err := v.new(t.TempDir())
			require.NoError(t, err)
			defer store.Close()

			loaded, err := store.Load("Nope_Nothing")
			require.NoError(t, err)
			assert.Nil(t, loaded)
		})
	}
}

func TestStoreSaveOverwrites(t *testing.T) {
	for _, v := range stores {
		t.Run(v.msg, func(t *testing.T) {
			store, err := v.new(t.TempDir())
			require.NoError(t, err)
			defer store.Close()

			require.NoError(t, store.Save("B", sampleTable()))

			smaller := storage.NewTable([]string{"id", "species"})
			smaller.Append(storage.Row{"id": "S3", "species": "Lynx lynx"})
			require.NoError(t, store.Save("B", smaller))

			loaded, err := store.Load("B")
			require.NoError(t, err)
			require.Equal(t, 1, loaded.Len())
			_, ok := loaded.Row("S1")
			assert.False(t, ok)
		})
	}
}

func TestStoreReset(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	for _, v := range stores {
		t.Run(v.msg, func(t *testing.T) {
			store, err := v.new(t.TempDir())
			require.NoError(t, err)
			defer store.Close()

			require.NoError(t, store.Save("A", sampleTable()))
			require.NoError(t, store.Save("B", sampleTable()))

			require.NoError(t, store.Reset())

			for _, bucket := range []string{"A", "B"} {
				loaded, err := store.Load(bucket)
				require.NoError(t, err)
				assert.Nil(t, loaded)
			}
		})
	}
}

func TestCSVResetKeepsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := iostorage.NewCSV(dir)
	require.NoError(t, err)
	defer store.Close()

	foreign := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(foreign, []byte("keep me"), 0644))
	require.NoError(t, store.Save("A", sampleTable()))

	require.NoError(t, store.Reset())

	_, err = os.Stat(foreign)
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "species_A.csv"))
	assert.True(t, os.IsNotExist(err))
}
