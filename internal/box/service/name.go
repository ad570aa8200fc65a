package service

import (
	"fmt"
	"regexp"
	"sync"
	"time"
)

var boxNamePattern = regexp.MustCompile(`^box-\d{8}_\d{6}_\d{6}\.pdf$`)

// Namer hands out output file names derived from the clock. Names from one
// Namer never repeat: when the clock has not moved a microsecond past the
// previous name, the timestamp is bumped by one microsecond.
type Namer struct {
	mu   sync.Mutex
	now  func() time.Time
	last time.Time
}

// NewNamer creates a Namer reading time from now. A nil now uses time.Now.
func NewNamer(now func() time.Time) *Namer {
	if now == nil {
		now = time.Now
	}
	return &Namer{now: now}
}

// Next returns a new box file name
func (n *Namer) Next() string {
	n.mu.Lock()
	defer n.mu.Unlock()

	t := n.now().Truncate(time.Microsecond)
	if !n.last.IsZero() && !t.After(n.last) {
		t = n.last.Add(time.Microsecond)
	}
	n.last = t

	return BoxName(t)
}

// BoxName formats t as box-YYYYMMDD_HHMMSS_ffffff.pdf
func BoxName(t time.Time) string {
	return fmt.Sprintf("box-%s_%06d.pdf", t.Format("20060102_150405"), t.Nanosecond()/int(time.Microsecond))
}

// IsBoxName reports whether name looks like a generated box file
func IsBoxName(name string) bool {
	return boxNamePattern.MatchString(name)
}
