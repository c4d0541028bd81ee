package graph

import "log/slog"

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger write operations are reported to at debug level.
// A nil logger keeps the default, which discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSequenceBandwidth sets how many node ids are leased from badger at once.
func WithSequenceBandwidth(bandwidth uint64) Option {
	return func(s *Store) {
		s.bandwidth = bandwidth
	}
}
