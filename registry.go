package rollfile

import (
	"sync"
)

// collisionRegistry tracks which appender claimed which active file path and
// which rotation pattern within one Context. The two namespaces are separate:
// a path and a pattern with the same string value do not collide.
//
// Entries are never removed by appender Stop; the table lives and dies with
// the owning Context.
type collisionRegistry struct {
	mu       sync.Mutex
	files    map[string]string // active file path -> owner appender name
	patterns map[string]string // rotation pattern -> owner appender name
}

func newCollisionRegistry() *collisionRegistry {
	return &collisionRegistry{
		files:    make(map[string]string),
		patterns: make(map[string]string),
	}
}

// registerFile claims path for owner. Returns false and the current owner's
// name if a different appender already holds the claim.
func (r *collisionRegistry) registerFile(path, owner string) (bool, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return claim(r.files, path, owner)
}

// registerPattern claims a rotation file-name pattern for owner.
func (r *collisionRegistry) registerPattern(pattern, owner string) (bool, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return claim(r.patterns, pattern, owner)
}

func claim(table map[string]string, key, owner string) (bool, string) {
	if current, taken := table[key]; taken && current != owner {
		return false, current
	}
	table[key] = owner
	return true, ""
}

// reset drops every claim. Called on context teardown.
func (r *collisionRegistry) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files = make(map[string]string)
	r.patterns = make(map[string]string)
}
