// Package iocol implements checklist.Source over the ChecklistBank
// REST API.
//
// All transport failures and non-2xx responses are translated into
// empty results: the traversal treats a failed call as "no data" for
// that taxon and continues with its siblings. The failures are logged.
package iocol

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gnames/colex/pkg/checklist"
	"github.com/gnames/colex/pkg/config"
	"github.com/gnames/gnfmt"
)

type client struct {
	cfg *config.Config
	hc  *http.Client
	enc gnfmt.Encoder
}

// New creates a checklist.Source backed by the ChecklistBank API.
func New(cfg *config.Config) checklist.Source {
	res := client{
		cfg: cfg,
		hc: &http.Client{
			Timeout: time.Duration(cfg.API.TimeoutSec) * time.Second,
		},
		enc: gnfmt.GNjson{},
	}
	return &res
}

// TreeRoots returns the root nodes of the dataset tree.
func (c *client) TreeRoots(
	ctx context.Context, datasetID int,
) ([]checklist.TaxonNode, error) {
	path := fmt.Sprintf("dataset/%d/tree", datasetID)
	var page checklist.Page
	if !c.get(ctx, path, nil, &page) {
		return nil, nil
	}
	return page.Result, nil
}

// Breakdown returns the immediate children of a taxon.
func (c *client) Breakdown(
	ctx context.Context, datasetID int, taxonID string,
) ([]checklist.TaxonNode, error) {
	path := fmt.Sprintf(
		"dataset/%d/taxon/%s/breakdown", datasetID, url.PathEscape(taxonID),
	)
	var nodes []checklist.TaxonNode
	if !c.get(ctx, path, nil, &nodes) {
		return nil, nil
	}
	return nodes, nil
}

// Children returns one page of tree children of a taxon, extinct taxa
// excluded.
func (c *client) Children(
	ctx context.Context, datasetID int, taxonID string, limit, offset int,
) (*checklist.Page, error) {
	path := fmt.Sprintf(
		"dataset/%d/tree/%s/children", datasetID, url.PathEscape(taxonID),
	)
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	params.Set("extinct", "false")

	var page checklist.Page
	if !c.get(ctx, path, params, &page) {
		return nil, nil
	}
	return &page, nil
}

// Vernaculars returns the common names of a taxon.
func (c *client) Vernaculars(
	ctx context.Context, datasetID int, taxonID string,
) ([]checklist.VernacularName, error) {
	path := fmt.Sprintf(
		"dataset/%d/taxon/%s/vernacular", datasetID, url.PathEscape(taxonID),
	)
	var names []checklist.VernacularName
	if !c.get(ctx, path, nil, &names) {
		return nil, nil
	}
	return names, nil
}

// Info returns the extended information block of a taxon.
func (c *client) Info(
	ctx context.Context, datasetID int, taxonID string,
) (*checklist.TaxonInfo, error) {
	path := fmt.Sprintf(
		"dataset/%d/taxon/%s/info", datasetID, url.PathEscape(taxonID),
	)
	var info checklist.TaxonInfo
	if !c.get(ctx, path, nil, &info) {
		return nil, nil
	}
	return &info, nil
}

// get executes one API request and decodes the JSON body into target.
// It returns false when the call yielded no usable data.
func (c *client) get(
	ctx context.Context, path string, params url.Values, target any,
) bool {
	reqURL := c.cfg.API.BaseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		slog.Warn("Cannot create API request", "url", reqURL, "error", err)
		return false
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.API.Username != "" {
		req.SetBasicAuth(c.cfg.API.Username, c.cfg.API.Password)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		slog.Warn("API request failed", "url", reqURL, "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("API request returned bad status",
			"url", reqURL, "status", resp.StatusCode)
		return false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Warn("Cannot read API response", "url", reqURL, "error", err)
		return false
	}

	if err = c.enc.Decode(body, target); err != nil {
		slog.Warn("Cannot decode API response", "url", reqURL, "error", err)
		return false
	}

	return true
}
