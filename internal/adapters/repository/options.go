package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithMaxGames caps the number of stored games. A value <= 0 removes the cap.
func WithMaxGames(n int) Option {
	return func(s *MemoryStore) {
		s.maxGames = n
	}
}
