package ioextract

import (
	"context"
	"strings"

	"github.com/gnames/colex/pkg/checklist"
	"github.com/gnames/gnlib"
)

// enrich builds the SpeciesRecord for a species node: vernacular names
// restricted to the language allow-list, plus distribution and
// environment metadata when the source has any. Missing enrichment
// data is not an error - the fields stay empty.
func (e *extractor) enrich(
	ctx context.Context, node checklist.TaxonNode, lineage checklist.Lineage,
) *checklist.SpeciesRecord {
	rec := checklist.NewSpeciesRecord(node, lineage)
	datasetID := e.cfg.API.DatasetID

	names, _ := e.src.Vernaculars(ctx, datasetID, node.ID)
	for _, vn := range names {
		lang := checklist.NormalizeLang(vn.Language)
		if _, ok := e.langs[lang]; !ok {
			continue
		}
		rec.AddVernacular(lang, gnlib.FixUtf8(vn.Name))
	}

	info, _ := e.src.Info(ctx, datasetID, node.ID)
	if info != nil {
		var areas []string
		for _, d := range info.Distributions {
			// Prefer the human-readable area name; fall back to the
			// gazetteer identifier.
			name := d.Area.Name
			if name == "" {
				name = d.Area.GlobalID
			}
			if name != "" {
				areas = append(areas, name)
			}
		}
		rec.Distribution = strings.Join(areas, ", ")

		if len(rec.Environments) == 0 {
			rec.Environments = info.Environments
		}
	}

	return rec
}
