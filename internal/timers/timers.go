// Package timers provides the hierarchical stopwatch stack used for the
// gridder's run reports. Timers are informational only; the gridder keeps
// one for every run and prints it only when verbosity is above zero.
package timers

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

// Stack accumulates wall-clock time per named bucket. Push opens a nested
// bucket, Pop closes the current one, PopPush does both. Not safe for
// concurrent use; the gridder drives it from the orchestrating goroutine
// only.
type Stack struct {
	names []string
	acc   map[string]time.Duration
	last  time.Time
}

// New creates a stack with the given root bucket already open.
func New(root string) *Stack {
	s := &Stack{acc: map[string]time.Duration{}, last: time.Now()}
	s.names = append(s.names, root)
	return s
}

func (s *Stack) key() string { return strings.Join(s.names, "/") }

func (s *Stack) flush() {
	now := time.Now()
	s.acc[s.key()] += now.Sub(s.last)
	s.last = now
}

// Push opens a nested bucket.
func (s *Stack) Push(name string) {
	s.flush()
	s.names = append(s.names, name)
}

// Pop closes the current bucket.
func (s *Stack) Pop() {
	s.flush()
	s.names = s.names[:len(s.names)-1]
}

// PopPush closes the current bucket and opens a sibling.
func (s *Stack) PopPush(name string) {
	s.flush()
	s.names[len(s.names)-1] = name
}

// Report writes the accumulated buckets, sorted by name.
func (s *Stack) Report(w io.Writer) {
	s.flush()
	keys := make([]string, 0, len(s.acc))
	var total time.Duration
	for k, v := range s.acc {
		keys = append(keys, k)
		total += v
	}
	sort.Strings(keys)
	fmt.Fprintf(w, "Total wall clock time: %.4fs\n", total.Seconds())
	for _, k := range keys {
		fmt.Fprintf(w, "%-40s %.4fs\n", k, s.acc[k].Seconds())
	}
}
