// Package dedupe remembers request IDs so retried requests are applied once.
package dedupe

// Option applies a configuration option to the in-memory deduper.
type Option func(*inMemoryDeduper)

// WithMaxSize sets how many request IDs are remembered. When full, the
// oldest ID is forgotten first. maxSize <= 0 remembers every ID.
func WithMaxSize(maxSize int) Option {
	return func(d *inMemoryDeduper) {
		d.maxSize = maxSize
	}
}
