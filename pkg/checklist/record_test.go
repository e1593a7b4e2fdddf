package checklist_test

import (
	"testing"

	"github.com/gnames/colex/pkg/checklist"
	"github.com/gnames/gnuuid"
	"github.com/stretchr/testify/assert"
)

func TestAddVernacular(t *testing.T) {
	rec := &checklist.SpeciesRecord{}

	rec.AddVernacular("eng", "Cat")
	rec.AddVernacular("eng", "Housecat")
	rec.AddVernacular("eng", "Cat")
	rec.AddVernacular("spa", "Gato")
	rec.AddVernacular("", "ignored")
	rec.AddVernacular("deu", "")

	assert.Equal(t, "Cat, Housecat", rec.Vernacular("eng"))
	assert.Equal(t, "Gato", rec.Vernacular("spa"))
	assert.Empty(t, rec.Vernacular("deu"))
	assert.Equal(t, []string{"eng", "spa"}, rec.Languages())
}

func TestEnsureID(t *testing.T) {
	rec := &checklist.SpeciesRecord{ScientificName: "Felis catus"}
	rec.EnsureID()
	assert.Equal(t, gnuuid.New("Felis catus").String(), rec.ID)

	// An ID from the source is never replaced.
	rec2 := &checklist.SpeciesRecord{ID: "ABC", ScientificName: "Felis catus"}
	rec2.EnsureID()
	assert.Equal(t, "ABC", rec2.ID)

	// Nothing to hash, nothing to fill.
	rec3 := &checklist.SpeciesRecord{}
	rec3.EnsureID()
	assert.Empty(t, rec3.ID)
}

func TestNewSpeciesRecord(t *testing.T) {
	node := checklist.TaxonNode{
		ID:         "X1",
		Name:       "Panthera leo",
		Authorship: "(Linnaeus, 1758)",
	}
	lineage := checklist.Lineage{checklist.RankGenus: "Panthera"}

	rec := checklist.NewSpeciesRecord(node, lineage)
	assert.Equal(t, "X1", rec.ID)
	assert.Equal(t, "Panthera leo", rec.ScientificName)
	assert.Equal(t, "(Linnaeus, 1758)", rec.Authorship)
	assert.Equal(t, "Panthera", rec.Lineage.Name(checklist.RankGenus))
	assert.NotNil(t, rec.Vernaculars)
}
