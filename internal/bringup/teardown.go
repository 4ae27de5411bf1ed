package bringup

import (
	log "github.com/sirupsen/logrus"
)

type release struct {
	name string
	fn   func()
}

// Teardown releases resources in the reverse of the order they were pushed.
// Pushing each handle right after it is created keeps every resource alive
// until everything created after it is gone.
type Teardown struct {
	releases []release
}

// Push registers the release for a freshly created resource.
func (t *Teardown) Push(name string, fn func()) {
	t.releases = append(t.releases, release{name: name, fn: fn})
}

// Len reports how many releases are still pending.
func (t *Teardown) Len() int {
	return len(t.releases)
}

// Release runs all pending releases newest-first. Calling it again is a no-op.
func (t *Teardown) Release() {
	for i := len(t.releases) - 1; i >= 0; i-- {
		r := t.releases[i]
		log.WithField("resource", r.name).Debug("destroying")
		r.fn()
	}
	t.releases = nil
}
