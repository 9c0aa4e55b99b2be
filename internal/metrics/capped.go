package metrics

import (
	"slices"
	"sync"
)

// MaxServiceLabels bounds the distinct service label values of LogsReceived.
const MaxServiceLabels = 1000

// OverflowLabel replaces the first label once the limit of distinct values is reached.
const OverflowLabel = "_other"

// CappedCounter passes through at most limit distinct values of the first label
// and folds the rest into OverflowLabel.
type CappedCounter struct {
	next  Counter
	limit int

	mu   sync.Mutex
	seen map[string]struct{}
}

func NewCappedCounter(next Counter, limit int) *CappedCounter {
	return &CappedCounter{
		next:  next,
		limit: limit,
		seen:  make(map[string]struct{}),
	}
}

func (c *CappedCounter) Inc(labels ...string) {
	c.next.Inc(c.bound(labels)...)
}

func (c *CappedCounter) Add(value float64, labels ...string) {
	c.next.Add(value, c.bound(labels)...)
}

func (c *CappedCounter) bound(labels []string) []string {
	if len(labels) == 0 {
		return labels
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.seen[labels[0]]; ok {
		return labels
	}
	if len(c.seen) < c.limit {
		c.seen[labels[0]] = struct{}{}
		return labels
	}

	out := slices.Clone(labels)
	out[0] = OverflowLabel
	return out
}
