// Package stats reports corpus statistics: how many instruments and
// chunks are indexed, the year range covered and the counts per
// instrument type. The technical-question answers interpolate these
// numbers.
package stats

import "context"

// Snapshot is a point-in-time view of the indexed corpus.
type Snapshot struct {
	// Instruments is the number of distinct legal instruments.
	Instruments int
	// Chunks is the total number of indexed segments.
	Chunks int
	// YearMin and YearMax bound the publication years; zero when
	// unknown.
	YearMin int
	YearMax int
	// ByType counts instruments per type ("lei", "decreto",
	// "resolução", "norma técnica").
	ByType map[string]int
}

// Empty reports whether the snapshot describes an empty corpus.
func (s *Snapshot) Empty() bool {
	return s == nil || s.Instruments == 0
}

// Provider supplies corpus statistics.
type Provider interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// fallback chains two providers, using the second when the first
// errors or reports an empty corpus.
type fallback struct {
	primary, secondary Provider
}

// WithFallback returns a Provider that consults secondary whenever
// primary has nothing to say.
func WithFallback(primary, secondary Provider) Provider {
	return &fallback{primary: primary, secondary: secondary}
}

func (f *fallback) Snapshot(ctx context.Context) (*Snapshot, error) {
	snap, err := f.primary.Snapshot(ctx)
	if err == nil && !snap.Empty() {
		return snap, nil
	}
	return f.secondary.Snapshot(ctx)
}
