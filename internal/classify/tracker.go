package classify

// Lifetime controls when a DuplicateTracker forgets what it has seen.
type Lifetime int

const (
	// LifetimeProcess keeps counts until the process exits.
	LifetimeProcess Lifetime = iota
	// LifetimeScan clears counts at the start of every scan.
	LifetimeScan
)

// DefaultDuplicateThreshold is the occurrence count at which a title is a duplicate.
const DefaultDuplicateThreshold = 3

// DuplicateTracker counts how often each normalized title has been seen.
//
// Counts only grow; there is no eviction, so memory grows with the number of
// distinct titles for as long as the tracker lives. It is not safe for
// concurrent use and must be owned by a single scan path.
type DuplicateTracker struct {
	counts    map[string]int
	lifetime  Lifetime
	threshold int
}

// TrackerOption configures a DuplicateTracker.
type TrackerOption func(*DuplicateTracker)

// WithLifetime sets the reset policy.
func WithLifetime(l Lifetime) TrackerOption {
	return func(t *DuplicateTracker) {
		t.lifetime = l
	}
}

// WithThreshold sets the occurrence count that marks a duplicate. Values
// below 1 are ignored.
func WithThreshold(n int) TrackerOption {
	return func(t *DuplicateTracker) {
		if n >= 1 {
			t.threshold = n
		}
	}
}

// NewDuplicateTracker returns an empty tracker with process lifetime and the default threshold.
func NewDuplicateTracker(opts ...TrackerOption) *DuplicateTracker {
	t := &DuplicateTracker{
		counts:    make(map[string]int),
		lifetime:  LifetimeProcess,
		threshold: DefaultDuplicateThreshold,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// RecordAndCheck increments the count for key and reports whether key has now
// been seen threshold or more times.
func (t *DuplicateTracker) RecordAndCheck(key string) bool {
	before := t.counts[key]
	t.counts[key] = before + 1
	return before >= t.threshold-1
}

// Count returns how many times key has been recorded.
func (t *DuplicateTracker) Count(key string) int {
	return t.counts[key]
}

// Len returns the number of distinct keys tracked.
func (t *DuplicateTracker) Len() int {
	return len(t.counts)
}

// BeginScan is called by scanners before each pass. Only LifetimeScan
// trackers drop their state here.
func (t *DuplicateTracker) BeginScan() {
	if t.lifetime == LifetimeScan && len(t.counts) > 0 {
		t.counts = make(map[string]int)
	}
}
