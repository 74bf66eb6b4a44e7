package neat

import "sync"

// innovationKey is the (in, out) pair an InnovationRecord keys on.
type innovationKey struct {
	in  Node
	out Node
}

// InnovationRecord is the process-wide, run-scoped registry that assigns
// stable innovation numbers to (in_node, out_node) pairs (spec §4.1). One
// instance lives for the lifetime of a single evolutionary run and is
// owned by exactly one Evaluator; two genomes anywhere in that run that
// independently discover the same structural feature get the same number.
//
// Get is safe to call concurrently (evaluate may run genomes' mutations in
// the caller's own goroutines in some pipelines), but the spec's
// single-mutation-domain model means this is a convenience, not a
// requirement to rely on for cross-Evaluator sharing.
type InnovationRecord struct {
	mu      sync.Mutex
	known   map[innovationKey]int
	counter int
}

// NewInnovationRecord creates an empty, zero-counter record.
func NewInnovationRecord() *InnovationRecord {
	return &InnovationRecord{known: make(map[innovationKey]int)}
}

// Get returns the innovation number for (in, out), allocating a fresh one
// on first sight of the pair and returning the stored value thereafter.
func (r *InnovationRecord) Get(in, out Node) int {
	key := innovationKey{in, out}

	r.mu.Lock()
	defer r.mu.Unlock()

	if n, ok := r.known[key]; ok {
		return n
	}
	n := r.counter
	r.counter++
	r.known[key] = n
	return n
}

// Size reports how many distinct (in, out) pairs have been registered so
// far. Exposed for observers/tests; not part of the spec's contract.
func (r *InnovationRecord) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.known)
}
