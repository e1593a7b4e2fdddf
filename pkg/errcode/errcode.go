package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Filters errors
	FiltersConfigError

	// Extract errors
	ExtractUnknownRankError

	// Storage errors
	StoreOpenError
	StoreLoadError
	StoreSaveError
	StoreResetError

	// Bulk errors
	BulkDownloadError
	BulkArchiveError
	BulkSourceMissingError
	BulkVernacularsError
	BulkReadError
)
