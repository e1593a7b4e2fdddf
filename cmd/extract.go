/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/gnames/colex/internal/iocol"
	"github.com/gnames/colex/internal/ioextract"
	"github.com/gnames/colex/pkg/checklist"
	"github.com/gnames/colex/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getExtractCmd returns the extract command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getExtractCmd() *cobra.Command {
	var (
		datasetID int
		store     string
		ranks     []string
		keep      bool
	)

	extractCmd := &cobra.Command{
		Use:   "extract",
		Short: "Walk the checklist tree through the ChecklistBank API",
		Long: `Walk the checklist's taxonomic tree through the ChecklistBank
REST API and save accepted extant species into per-taxon tables.

The traversal starts at the dataset roots, keeps only the taxa allowed
by filters.yaml, and fetches species page by page under each genus.
Each species row carries its classification lineage, vernacular names
in the configured languages, and distribution data.

Repeated runs against overlapping taxa merge by species: new
vernacular names are appended, existing fields are kept.

Examples:
  # Extract using dataset and filters from the configuration
  colex extract

  # Extract from a different ChecklistBank dataset
  colex extract -d 310463

  # One output table per class instead of class+order
  colex extract --bucket-ranks class

  # Keep tables from previous runs and merge into them
  colex extract --keep`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runExtract(keep)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	extractCmd.Flags().IntVarP(
		&datasetID, "dataset-id", "d", 0,
		"ChecklistBank dataset to traverse",
	)
	extractCmd.Flags().StringVarP(
		&store, "store", "s", "",
		"output backend: csv or sqlite",
	)
	extractCmd.Flags().StringSliceVarP(
		&ranks, "bucket-ranks", "b", nil,
		"lineage ranks forming the output bucket key",
	)
	extractCmd.Flags().BoolVarP(
		&keep, "keep", "k", false,
		"keep output tables from previous runs",
	)

	extractCmd.PreRun = func(cmd *cobra.Command, args []string) {
		var flagOpts []config.Option
		if datasetID > 0 {
			flagOpts = append(flagOpts, config.OptAPIDatasetID(datasetID))
		}
		if store != "" {
			flagOpts = append(flagOpts, config.OptExtractStore(store))
		}
		if len(ranks) > 0 {
			flagOpts = append(flagOpts, config.OptExtractBucketRanks(ranks))
		}
		cfg.Update(flagOpts)
	}

	return extractCmd
}

func runExtract(keep bool) error {
	ctx := context.Background()

	env, err := setupRun(keep)
	if err != nil {
		return err
	}
	defer env.store.Close()

	src := iocol.New(cfg)
	filter := checklist.NewRankFilter(env.filters.Ranks)
	ex := ioextract.New(cfg, src, filter, env.merger, env.filters.Languages)

	return ex.Extract(ctx)
}
