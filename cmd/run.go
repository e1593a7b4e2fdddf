package cmd

import (
	"fmt"
	"log/slog"

	"github.com/gnames/colex/internal/iofilters"
	"github.com/gnames/colex/internal/iostorage"
	"github.com/gnames/colex/pkg/checklist"
	"github.com/gnames/colex/pkg/config"
	"github.com/gnames/colex/pkg/storage"
	"github.com/gnames/gn"
)

// runEnv bundles the pieces both extract and bulk need: the rank
// filter from filters.yaml, the language allow-list, and the output
// merger on top of the configured store.
type runEnv struct {
	filters *iofilters.Filters
	store   storage.BucketStore
	merger  *storage.Merger
}

// setupRun prepares the output store and filters for a fresh run.
// Unless keep is set, tables from previous runs are removed first.
func setupRun(keep bool) (*runEnv, error) {
	filters, err := iofilters.Load(config.FiltersFilePath(homeDir))
	if err != nil {
		return nil, err
	}

	bucketRanks, err := parseBucketRanks(cfg.Extract.BucketRanks)
	if err != nil {
		return nil, err
	}

	store, err := newStore(cfg)
	if err != nil {
		return nil, err
	}

	if !keep {
		if err = store.Reset(); err != nil {
			store.Close()
			return nil, err
		}
	}

	slog.Info(
		"Output store ready",
		"store", cfg.Extract.Store,
		"dir", config.DataDir(homeDir),
		"bucket_ranks", cfg.Extract.BucketRanks,
	)

	res := &runEnv{
		filters: filters,
		store:   store,
		merger:  storage.NewMerger(store, bucketRanks, filters.Languages),
	}
	return res, nil
}

func newStore(cfg *config.Config) (storage.BucketStore, error) {
	dir := config.DataDir(cfg.HomeDir)
	switch cfg.Extract.Store {
	case "sqlite":
		return iostorage.NewSQLite(dir)
	default:
		return iostorage.NewCSV(dir)
	}
}

func parseBucketRanks(names []string) ([]checklist.Rank, error) {
	res := make([]checklist.Rank, 0, len(names))
	for _, name := range names {
		rank := checklist.ParseRank(name)
		if rank == checklist.RankUnknown || rank == checklist.RankSpecies {
			gn.Warn("<warn>Cannot use '%s' as a bucket rank</warn>", name)
			return nil, fmt.Errorf("invalid bucket rank: %s", name)
		}
		res = append(res, rank)
	}
	return res, nil
}
