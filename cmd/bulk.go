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

	"github.com/gnames/colex/internal/iobulk"
	"github.com/gnames/colex/pkg/checklist"
	"github.com/gnames/colex/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getBulkCmd returns the bulk command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getBulkCmd() *cobra.Command {
	var (
		archiveURL string
		store      string
		ranks      []string
		jobs       int
		keep       bool
	)

	bulkCmd := &cobra.Command{
		Use:   "bulk",
		Short: "Process a ColDP export of the checklist",
		Long: `Download the checklist's ColDP export once, then build the
per-taxon species tables from its TSV files without any API traffic.

The export archive and its unpacked files are cached under
~/.cache/colex/coldp; remove that directory to force a re-download.

Bulk mode applies the same filters.yaml rank lists and language
allow-list as extract, and produces the same output tables. Name
parsing runs on a worker pool sized by jobs_number.

Examples:
  # Process the configured export
  colex bulk

  # Use a different export archive
  colex bulk -a https://api.checklistbank.org/dataset/310958/export.zip

  # Limit parsing workers
  colex bulk -j 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runBulk(keep)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	bulkCmd.Flags().StringVarP(
		&archiveURL, "archive-url", "a", "",
		"URL of the ColDP export archive",
	)
	bulkCmd.Flags().StringVarP(
		&store, "store", "s", "",
		"output backend: csv or sqlite",
	)
	bulkCmd.Flags().StringSliceVarP(
		&ranks, "bucket-ranks", "b", nil,
		"lineage ranks forming the output bucket key",
	)
	bulkCmd.Flags().IntVarP(
		&jobs, "jobs", "j", 0,
		"number of name-parsing workers",
	)
	bulkCmd.Flags().BoolVarP(
		&keep, "keep", "k", false,
		"keep output tables from previous runs",
	)

	bulkCmd.PreRun = func(cmd *cobra.Command, args []string) {
		var flagOpts []config.Option
		if archiveURL != "" {
			flagOpts = append(flagOpts, config.OptBulkArchiveURL(archiveURL))
		}
		if store != "" {
			flagOpts = append(flagOpts, config.OptExtractStore(store))
		}
		if len(ranks) > 0 {
			flagOpts = append(flagOpts, config.OptExtractBucketRanks(ranks))
		}
		if jobs > 0 {
			flagOpts = append(flagOpts, config.OptJobsNumber(jobs))
		}
		cfg.Update(flagOpts)
	}

	return bulkCmd
}

func runBulk(keep bool) error {
	ctx := context.Background()

	env, err := setupRun(keep)
	if err != nil {
		return err
	}
	defer env.store.Close()

	filter := checklist.NewRankFilter(env.filters.Ranks)
	b := iobulk.New(cfg, filter, env.merger, env.filters.Languages)

	return b.Run(ctx)
}
