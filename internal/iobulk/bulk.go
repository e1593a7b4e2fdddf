// Package iobulk processes a ColDP export of the checklist: it
// downloads and unpacks the archive, streams NameUsage.tsv, filters
// the rows down to accepted extant species of the configured taxa,
// joins vernacular names from VernacularName.tsv, and persists the
// records into output buckets.
//
// Name parsing runs on a worker pool; persisting stays on a single
// goroutine, so the output store never sees concurrent writers.
package iobulk

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/colex/pkg/checklist"
	"github.com/gnames/colex/pkg/config"
	"github.com/gnames/colex/pkg/storage"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"golang.org/x/sync/errgroup"
)

// Bulker runs the bulk extraction.
type Bulker struct {
	cfg    *config.Config
	filter *checklist.RankFilter
	merger *storage.Merger
	langs  map[string]struct{}

	speciesCount int
}

// New creates a Bulker persisting through the given merger.
func New(
	cfg *config.Config,
	filter *checklist.RankFilter,
	merger *storage.Merger,
	languages []string,
) *Bulker {
	langs := make(map[string]struct{}, len(languages))
	for _, l := range languages {
		langs[l] = struct{}{}
	}
	return &Bulker{
		cfg:    cfg,
		filter: filter,
		merger: merger,
		langs:  langs,
	}
}

// usageRow is one pre-filtered row of NameUsage.tsv.
type usageRow struct {
	id             string
	scientificName string
	authorship     string
	environment    string
	lineage        checklist.Lineage
}

// Run performs one bulk extraction.
func (b *Bulker) Run(ctx context.Context) error {
	start := time.Now()

	dir, err := ensureArchive(ctx, b.cfg)
	if err != nil {
		return err
	}

	usagePath := filepath.Join(dir, nameUsageFile)
	if _, err = os.Stat(usagePath); err != nil {
		return SourceMissingError(usagePath, err)
	}

	verns, err := readVernaculars(filepath.Join(dir, vernacularFile), b.langs)
	if err != nil {
		return err
	}
	slog.Info("Loaded vernacular names", "taxa", len(verns))

	gn.Info("Processing <em>%s</em>", nameUsageFile)
	if err = b.processUsage(ctx, usagePath, verns); err != nil {
		return err
	}

	gn.Message(
		"<em>Saved %s species in %s</em>",
		humanize.Comma(int64(b.speciesCount)),
		gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}

// processUsage streams NameUsage.tsv through the parse workers and the
// single persisting collector.
func (b *Bulker) processUsage(
	ctx context.Context,
	path string,
	verns map[string][]vernEntry,
) error {
	f, err := os.Open(path)
	if err != nil {
		return ReadError(path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return ReadError(path, err)
	}
	bar := pb.Full.Start64(st.Size())
	bar.Set(pb.Bytes, true)
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	r := newTSVReader(bar.NewProxyReader(f))
	header, err := r.Read()
	if err != nil {
		return ReadError(path, err)
	}
	cols := columnIndex(header)

	chIn := make(chan usageRow)
	chOut := make(chan *checklist.SpeciesRecord)

	g, gCtx := errgroup.WithContext(ctx)
	var wg sync.WaitGroup

	for range b.cfg.JobsNumber {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return b.parseWorker(gCtx, chIn, chOut, verns)
		})
	}

	// The collector is the only goroutine that writes to storage.
	g.Go(func() error {
		for rec := range chOut {
			if err := b.merger.Persist(rec); err != nil {
				return err
			}
			b.speciesCount++

			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
			}
		}
		return nil
	})

	go func() {
		wg.Wait()
		close(chOut)
	}()

	readErr := b.readRows(gCtx, r, cols, chIn)
	close(chIn)

	if err = g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if readErr != nil && !errors.Is(readErr, context.Canceled) {
		return readErr
	}
	return nil
}

// readRows streams the TSV rows, dropping everything that is not an
// accepted, extant species of the configured taxa before the row ever
// reaches a worker.
func (b *Bulker) readRows(
	ctx context.Context,
	r *csv.Reader,
	cols map[string]int,
	chIn chan<- usageRow,
) error {
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return ReadError(nameUsageFile, err)
		}

		if strings.ToLower(field(rec, cols, "col:status")) != "accepted" {
			continue
		}
		if checklist.ParseRank(field(rec, cols, "col:rank")) != checklist.RankSpecies {
			continue
		}
		if strings.EqualFold(field(rec, cols, "col:extinct"), "true") {
			continue
		}

		lineage := checklist.Lineage{}
		included := true
		for _, rank := range []checklist.Rank{
			checklist.RankKingdom, checklist.RankPhylum, checklist.RankClass,
			checklist.RankOrder, checklist.RankFamily, checklist.RankGenus,
		} {
			name := field(rec, cols, "col:"+rank.String())
			if !b.filter.IsIncluded(rank, name) {
				included = false
				break
			}
			if name != "" {
				lineage = lineage.Extend(rank, name)
			}
		}
		if !included {
			continue
		}

		row := usageRow{
			id:             field(rec, cols, "col:ID"),
			scientificName: field(rec, cols, "col:scientificName"),
			authorship:     field(rec, cols, "col:authorship"),
			environment:    field(rec, cols, "col:environment"),
			lineage:        lineage,
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case chIn <- row:
		}
	}
}

// parseWorker converts usage rows into species records. Each worker
// owns a gnparser instance; the botanical code setting keeps subgenus
// names like "Aus (Bus)" from parsing incorrectly.
func (b *Bulker) parseWorker(
	ctx context.Context,
	chIn <-chan usageRow,
	chOut chan<- *checklist.SpeciesRecord,
	verns map[string][]vernEntry,
) error {
	pCfg := gnparser.NewConfig(gnparser.OptCode(nomcode.Botanical))
	parser := gnparser.New(pCfg)

	for row := range chIn {
		rec := b.buildRecord(parser, row, verns)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case chOut <- rec:
		}
	}
	return nil
}

func (b *Bulker) buildRecord(
	parser gnparser.GNparser,
	row usageRow,
	verns map[string][]vernEntry,
) *checklist.SpeciesRecord {
	name := row.scientificName
	parsed := parser.ParseName(name)
	if parsed.Parsed {
		name = parsed.Canonical.Simple
	}

	rec := &checklist.SpeciesRecord{
		ID:             row.id,
		ScientificName: name,
		Authorship:     row.authorship,
		Environments:   splitList(row.environment),
		Lineage:        row.lineage,
		Vernaculars:    make(map[string][]string),
	}
	rec.EnsureID()

	for _, v := range verns[row.id] {
		rec.AddVernacular(v.lang, v.name)
	}
	return rec
}

// splitList splits a comma-separated TSV field into trimmed values.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(s, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			res = append(res, v)
		}
	}
	return res
}
