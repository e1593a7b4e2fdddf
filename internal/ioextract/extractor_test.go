package ioextract_test

import (
	"context"
	"testing"

	"github.com/gnames/colex/internal/ioextract"
	"github.com/gnames/colex/pkg/checklist"
	"github.com/gnames/colex/pkg/config"
	"github.com/gnames/colex/pkg/extract"
	"github.com/gnames/colex/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource serves a fixed synthetic tree and counts children calls
// per taxon.
type stubSource struct {
	roots       []checklist.TaxonNode
	breakdown   map[string][]checklist.TaxonNode
	children    map[string][]checklist.TaxonNode
	vernaculars map[string][]checklist.VernacularName
	info        map[string]*checklist.TaxonInfo

	childrenCalls map[string]int
}

func newStubSource() *stubSource {
	return &stubSource{
		breakdown:     make(map[string][]checklist.TaxonNode),
		children:      make(map[string][]checklist.TaxonNode),
		vernaculars:   make(map[string][]checklist.VernacularName),
		info:          make(map[string]*checklist.TaxonInfo),
		childrenCalls: make(map[string]int),
	}
}

func (s *stubSource) TreeRoots(
	ctx context.Context, datasetID int,
) ([]checklist.TaxonNode, error) {
	return s.roots, nil
}

func (s *stubSource) Breakdown(
	ctx context.Context, datasetID int, taxonID string,
) ([]checklist.TaxonNode, error) {
	return s.breakdown[taxonID], nil
}

func (s *stubSource) Children(
	ctx context.Context, datasetID int, taxonID string, limit, offset int,
) (*checklist.Page, error) {
	s.childrenCalls[taxonID]++
	all := s.children[taxonID]
	if offset >= len(all) {
		return &checklist.Page{Total: len(all), Last: true}, nil
	}
	end := min(offset+limit, len(all))
	return &checklist.Page{
		Result: all[offset:end],
		Total:  len(all),
		Last:   end == len(all),
	}, nil
}

func (s *stubSource) Vernaculars(
	ctx context.Context, datasetID int, taxonID string,
) ([]checklist.VernacularName, error) {
	return s.vernaculars[taxonID], nil
}

func (s *stubSource) Info(
	ctx context.Context, datasetID int, taxonID string,
) (*checklist.TaxonInfo, error) {
	return s.info[taxonID], nil
}

// memStore collects persisted tables in memory.
type memStore struct {
	tables map[string]*storage.Table
}

func newMemStore() *memStore {
	return &memStore{tables: make(map[string]*storage.Table)}
}

func (s *memStore) Load(bucket string) (*storage.Table, error) {
	return s.tables[bucket], nil
}

func (s *memStore) Save(bucket string, t *storage.Table) error {
	s.tables[bucket] = t
	return nil
}

func (s *memStore) Reset() error { return nil }
func (s *memStore) Close() error { return nil }

func testConfig() *config.Config {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptAPIPageSize(10)})
	return cfg
}

func newExtractor(
	src checklist.Source, store storage.BucketStore,
) (extract.Extractor, *storage.Merger) {
	cfg := testConfig()
	filter := checklist.NewRankFilter(checklist.RankFilterConfig{})
	merger := storage.NewMerger(
		store,
		[]checklist.Rank{checklist.RankClass, checklist.RankOrder},
		[]string{"eng"},
	)
	ex := ioextract.New(cfg, src, filter, merger, []string{"eng"})
	return ex, merger
}

func node(id, name, rank string, species int) checklist.TaxonNode {
	return checklist.TaxonNode{
		ID: id, Name: name, Rank: rank, SpeciesCount: species,
	}
}

// buildTree wires kingdom through family; the genus level is left to
// the individual test.
func buildTree(src *stubSource) {
	src.roots = []checklist.TaxonNode{node("k1", "Animalia", "kingdom", 0)}
	src.breakdown["k1"] = []checklist.TaxonNode{
		node("p1", "Chordata", "phylum", 0),
	}
	src.breakdown["p1"] = []checklist.TaxonNode{
		node("c1", "Mammalia", "class", 0),
	}
	src.breakdown["c1"] = []checklist.TaxonNode{
		node("o1", "Carnivora", "order", 0),
	}
	src.breakdown["o1"] = []checklist.TaxonNode{
		node("f1", "Felidae", "family", 0),
	}
}

func TestExtractEndToEnd(t *testing.T) {
	src := newStubSource()
	buildTree(src)
	src.breakdown["f1"] = []checklist.TaxonNode{
		node("g1", "Felis", "genus", 2),
	}
	src.children["g1"] = []checklist.TaxonNode{
		node("s1", "Felis catus", "species", 0),
		node("s2", "Felis silvestris", "species", 0),
	}
	src.vernaculars["s1"] = []checklist.VernacularName{
		{Language: "eng", Name: "Cat"},
		{Language: "deu", Name: "Hauskatze"},
	}
	src.info["s1"] = &checklist.TaxonInfo{
		Distributions: []checklist.Distribution{
			{Area: checklist.Area{Name: "Europe"}},
			{Area: checklist.Area{GlobalID: "TDWG:AGS"}},
		},
	}

	store := newMemStore()
	ex, _ := newExtractor(src, store)

	err := ex.Extract(context.Background())
	require.NoError(t, err)

	require.Len(t, store.tables, 1)
	tbl, ok := store.tables["Mammalia_Carnivora"]
	require.True(t, ok)
	require.Equal(t, 2, tbl.Len())

	row, ok := tbl.Row("s1")
	require.True(t, ok)
	assert.Equal(t, "Felis catus", row["species"])
	assert.Equal(t, "Animalia", row["kingdom"])
	assert.Equal(t, "Chordata", row["phylum"])
	assert.Equal(t, "Mammalia", row["class"])
	assert.Equal(t, "Carnivora", row["order"])
	assert.Equal(t, "Felidae", row["family"])
	assert.Equal(t, "Felis", row["genus"])

	// Only the allow-listed language survives enrichment.
	assert.Equal(t, "Cat", row["vernacular_eng"])
	assert.Empty(t, row["vernacular_deu"])

	// Named area first, gazetteer ID as fallback.
	assert.Equal(t, "Europe, TDWG:AGS", row["distribution"])
}

func TestExtractZeroSpeciesCount(t *testing.T) {
	src := newStubSource()
	buildTree(src)
	src.breakdown["f1"] = []checklist.TaxonNode{
		node("g1", "Felis", "genus", 0),
	}

	store := newMemStore()
	ex, _ := newExtractor(src, store)

	err := ex.Extract(context.Background())
	require.NoError(t, err)

	// A genus hinted at zero species is never paged.
	assert.Zero(t, src.childrenCalls["g1"])
	assert.Empty(t, store.tables)
}

func TestExtractSubgenusExpansion(t *testing.T) {
	src := newStubSource()
	buildTree(src)
	src.breakdown["f1"] = []checklist.TaxonNode{
		node("g1", "Panthera", "genus", 2),
	}
	// The genus page holds subgenera, not species.
	src.children["g1"] = []checklist.TaxonNode{
		node("sg1", "Tigris", "subgenus", 0),
		node("sg2", "Uncia", "subgenus", 0),
	}
	src.children["sg1"] = []checklist.TaxonNode{
		node("s1", "Panthera tigris", "species", 0),
	}
	src.children["sg2"] = []checklist.TaxonNode{
		node("s2", "Panthera uncia", "species", 0),
	}

	store := newMemStore()
	ex, _ := newExtractor(src, store)

	err := ex.Extract(context.Background())
	require.NoError(t, err)

	// Exactly one extra fetch per subgenus.
	assert.Equal(t, 1, src.childrenCalls["sg1"])
	assert.Equal(t, 1, src.childrenCalls["sg2"])

	tbl := store.tables["Mammalia_Carnivora"]
	require.NotNil(t, tbl)
	// No record is produced from the subgenus page itself.
	require.Equal(t, 2, tbl.Len())
	_, hasSubgenusRow := tbl.Row("sg1")
	assert.False(t, hasSubgenusRow)

	row, _ := tbl.Row("s1")
	assert.Equal(t, "Tigris", row["subgenus"])
	row2, _ := tbl.Row("s2")
	assert.Equal(t, "Uncia", row2["subgenus"])
}

func TestExtractSubgenusSpeciesCountStopsPaging(t *testing.T) {
	src := newStubSource()
	buildTree(src)
	// The hint counts species, which all sit below one subgenus.
	src.breakdown["f1"] = []checklist.TaxonNode{
		node("g1", "Panthera", "genus", 2),
	}
	src.children["g1"] = []checklist.TaxonNode{
		node("sg1", "Tigris", "subgenus", 0),
	}
	src.children["sg1"] = []checklist.TaxonNode{
		node("s1", "Panthera tigris", "species", 0),
		node("s2", "Panthera sondaica", "species", 0),
	}

	store := newMemStore()
	ex, _ := newExtractor(src, store)

	err := ex.Extract(context.Background())
	require.NoError(t, err)

	// The expanded species satisfy the hint after a single genus page;
	// no trailing empty-page fetch.
	assert.Equal(t, 1, src.childrenCalls["g1"])
	assert.Equal(t, 1, src.childrenCalls["sg1"])

	tbl := store.tables["Mammalia_Carnivora"]
	require.NotNil(t, tbl)
	assert.Equal(t, 2, tbl.Len())
}

func TestExtractSkipsSynonymsAndExtinct(t *testing.T) {
	src := newStubSource()
	buildTree(src)
	src.breakdown["f1"] = []checklist.TaxonNode{
		node("g1", "Felis", "genus", 3),
	}
	synonym := node("s2", "Felis daemon", "species", 0)
	synonym.Status = "synonym"
	extinct := node("s3", "Felis attica", "species", 0)
	extinct.Extinct = true
	src.children["g1"] = []checklist.TaxonNode{
		node("s1", "Felis catus", "species", 0),
		synonym,
		extinct,
	}

	store := newMemStore()
	ex, _ := newExtractor(src, store)

	err := ex.Extract(context.Background())
	require.NoError(t, err)

	tbl := store.tables["Mammalia_Carnivora"]
	require.NotNil(t, tbl)
	assert.Equal(t, 1, tbl.Len())
}

func TestExtractUnknownRankFatal(t *testing.T) {
	src := newStubSource()
	src.roots = []checklist.TaxonNode{node("k1", "Animalia", "kingdom", 0)}
	src.breakdown["k1"] = []checklist.TaxonNode{
		node("x1", "Incertae", "superphylum", 0),
	}

	store := newMemStore()
	ex, _ := newExtractor(src, store)

	err := ex.Extract(context.Background())
	assert.Error(t, err)
}

func TestExtractPrunesFilteredBranches(t *testing.T) {
	src := newStubSource()
	src.roots = []checklist.TaxonNode{node("k1", "Animalia", "kingdom", 0)}
	src.breakdown["k1"] = []checklist.TaxonNode{
		node("p1", "Chordata", "phylum", 0),
		node("p2", "Rotifera", "phylum", 0),
	}
	src.breakdown["p1"] = nil
	src.breakdown["p2"] = []checklist.TaxonNode{
		node("c2", "Monogononta", "class", 0),
	}

	cfg := testConfig()
	filter := checklist.NewRankFilter(checklist.RankFilterConfig{
		Allow: map[checklist.Rank][]string{
			checklist.RankPhylum: {"Chordata"},
		},
	})
	store := newMemStore()
	merger := storage.NewMerger(
		store, []checklist.Rank{checklist.RankClass}, nil,
	)
	ex := ioextract.New(cfg, src, filter, merger, nil)

	err := ex.Extract(context.Background())
	require.NoError(t, err)

	// The pruned phylum's children are never requested.
	assert.Empty(t, store.tables)
	assert.Zero(t, src.childrenCalls["p2"])
}
