package iobulk

import (
	"archive/zip"
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/colex/pkg/config"
	"github.com/gnames/gn"
	"github.com/gnames/gnsys"
)

const (
	nameUsageFile  = "NameUsage.tsv"
	vernacularFile = "VernacularName.tsv"
)

// ensureArchive makes sure the ColDP export is downloaded and unpacked
// in the cache, and returns the directory holding the TSV files. Both
// the download and the extraction are skipped when their results are
// already cached; remove ~/.cache/colex/coldp to force a re-download.
func ensureArchive(ctx context.Context, cfg *config.Config) (string, error) {
	cacheDir := filepath.Join(config.CacheDir(cfg.HomeDir), "coldp")
	if err := gnsys.MakeDir(cacheDir); err != nil {
		return "", ArchiveError(cacheDir, err)
	}

	zipPath := filepath.Join(cacheDir, "coldp.zip")
	extractDir := filepath.Join(cacheDir, "export")

	if _, err := os.Stat(zipPath); os.IsNotExist(err) {
		gn.Info("Downloading checklist export from <em>%s</em>", cfg.Bulk.ArchiveURL)
		if err = download(ctx, cfg.Bulk.ArchiveURL, zipPath); err != nil {
			return "", err
		}
	} else {
		gn.Info("Using cached checklist archive <em>%s</em>", zipPath)
	}

	if _, err := os.Stat(filepath.Join(extractDir, nameUsageFile)); os.IsNotExist(err) {
		gn.Info("Unpacking checklist archive")
		if err = unzip(zipPath, extractDir); err != nil {
			return "", err
		}
	} else {
		gn.Info("Using cached checklist export <em>%s</em>", extractDir)
	}

	return extractDir, nil
}

// download streams the archive to disk through a temporary file so an
// interrupted download is never mistaken for a complete one.
func download(ctx context.Context, srcURL, dst string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return DownloadError(srcURL, err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return DownloadError(srcURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return DownloadError(srcURL, badStatusError(resp.StatusCode))
	}

	tmp := dst + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return DownloadError(srcURL, err)
	}

	if _, err = io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return DownloadError(srcURL, err)
	}
	if err = f.Close(); err != nil {
		return DownloadError(srcURL, err)
	}

	if err = os.Rename(tmp, dst); err != nil {
		return DownloadError(srcURL, err)
	}

	slog.Info("Archive downloaded", "url", srcURL, "path", dst)
	return nil
}

// unzip extracts a zip archive into dir, refusing paths that escape it.
func unzip(zipPath, dir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return ArchiveError(zipPath, err)
	}
	defer r.Close()

	if err = gnsys.MakeDir(dir); err != nil {
		return ArchiveError(dir, err)
	}

	for _, zf := range r.File {
		dst := filepath.Join(dir, zf.Name)
		if !strings.HasPrefix(dst, filepath.Clean(dir)+string(os.PathSeparator)) {
			return ArchiveError(zipPath, pathEscapeError(zf.Name))
		}

		if zf.FileInfo().IsDir() {
			if err = os.MkdirAll(dst, 0755); err != nil {
				return ArchiveError(zipPath, err)
			}
			continue
		}

		if err = os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return ArchiveError(zipPath, err)
		}

		src, err := zf.Open()
		if err != nil {
			return ArchiveError(zipPath, err)
		}
		out, err := os.Create(dst)
		if err != nil {
			src.Close()
			return ArchiveError(zipPath, err)
		}
		_, err = io.Copy(out, src)
		src.Close()
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return ArchiveError(zipPath, err)
		}
	}

	slog.Info("Archive unpacked", "path", zipPath, "dir", dir)
	return nil
}
