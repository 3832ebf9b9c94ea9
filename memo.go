package virtual

import "time"

// Memo caches the result of a computation keyed by a dependency tuple.
//
// The tuple is a comparable value (usually a small struct) rebuilt on every
// Get and compared with == against the tuple seen on the previous call.
// Plain values compare by value. Things that can't be compared that way
// (strategies, caches, slices produced by other memos) are represented in the
// tuple by revision counters owned by whoever replaces them.
//
// Usage:
//
//	type sumDeps struct{ a, b int }
//	sum := NewMemo("sum",
//	    func() sumDeps { return sumDeps{x, y} },
//	    func(d sumDeps) int { return d.a + d.b },
//	)
//	sum.Get() // computes
//	sum.Get() // cached until x or y change
type Memo[D comparable, R any] struct {
	name     string
	deps     func() D
	compute  func(D) R
	onChange func(R)
	debug    func() bool

	last   D
	result R
	valid  bool
	rev    uint64
}

// MemoOption configures a Memo.
type MemoOption func(*memoConfig)

type memoConfig struct {
	debug func() bool
}

// WithMemoDebug logs every recompute with its duration while enabled returns true.
func WithMemoDebug(enabled func() bool) MemoOption {
	return func(c *memoConfig) { c.debug = enabled }
}

// NewMemo creates a memoized accessor. Nothing is computed until the first Get.
func NewMemo[D comparable, R any](name string, deps func() D, compute func(D) R, opts ...MemoOption) *Memo[D, R] {
	var cfg memoConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &Memo[D, R]{
		name:    name,
		deps:    deps,
		compute: compute,
		debug:   cfg.debug,
	}
	return m
}

// OnChange sets fn to be called with the new result after each recompute.
// It returns m for chaining onto NewMemo.
func (m *Memo[D, R]) OnChange(fn func(R)) *Memo[D, R] {
	m.onChange = fn
	return m
}

// Get returns the cached result, recomputing it first if any dependency changed.
func (m *Memo[D, R]) Get() R {
	d := m.deps()
	if m.valid && d == m.last {
		return m.result
	}

	var begin time.Time
	debug := m.debug != nil && m.debug()
	if debug {
		begin = time.Now()
	}

	m.result = m.compute(d)
	m.last = d
	m.valid = true
	m.rev++

	if debug {
		logger.Info("memo recompute", "name", m.name, "took", time.Since(begin), "deps", d)
	}
	if m.onChange != nil {
		m.onChange(m.result)
	}
	return m.result
}

// Revision brings the memo up to date and returns how many times it has
// recomputed. Downstream memos use it as a dependency in place of the result.
func (m *Memo[D, R]) Revision() uint64 {
	m.Get()
	return m.rev
}

// Reset forgets the cached result so the next Get recomputes unconditionally.
func (m *Memo[D, R]) Reset() {
	var zero R
	m.result = zero
	m.valid = false
}
