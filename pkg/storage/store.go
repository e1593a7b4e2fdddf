package storage

// BucketStore persists output tables, one table per bucket key.
// Implementations: CSV files and SQLite (internal/iostorage).
type BucketStore interface {
	// Load returns the persisted table for a bucket, or (nil, nil)
	// when the bucket does not exist yet.
	Load(bucket string) (*Table, error)

	// Save persists the whole table for a bucket, replacing any
	// previous content. Called after every merged record so an
	// interrupted run leaves all completed species durable.
	Save(bucket string, t *Table) error

	// Reset removes all previously persisted buckets. Called once at
	// the start of a fresh run.
	Reset() error

	// Close releases store resources.
	Close() error
}
