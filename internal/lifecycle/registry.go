package lifecycle

import (
	"reflect"
	"time"
)

// entry is one active resource. Owned exclusively by the registry;
// created on register, destroyed on unregister, type/age sweeps, or
// manager teardown.
type entry struct {
	resource any
	cleanup  func()
	md       Metadata
}

// registry records every tracked resource keyed by the resource value
// itself. It is not safe for concurrent use; the manager serializes
// access.
type registry struct {
	entries map[any]*entry
}

func newRegistry() *registry {
	return &registry{entries: make(map[any]*entry)}
}

// put inserts or replaces an entry. Re-registration replaces metadata,
// never duplicates. Returns false when the resource cannot be used as an
// identity key.
func (r *registry) put(resource any, md Metadata, cleanup func()) bool {
	if resource == nil {
		return false
	}
	if t := reflect.TypeOf(resource); !t.Comparable() {
		return false
	}
	if md.CreatedAt.IsZero() {
		md.CreatedAt = time.Now()
	}
	r.entries[resource] = &entry{resource: resource, cleanup: cleanup, md: md}
	return true
}

// take removes and returns the entry for a resource, if present.
func (r *registry) take(resource any) *entry {
	if resource == nil {
		return nil
	}
	if t := reflect.TypeOf(resource); !t.Comparable() {
		return nil
	}
	e, ok := r.entries[resource]
	if !ok {
		return nil
	}
	delete(r.entries, resource)
	return e
}

// takeByType removes and returns every entry of the given type.
func (r *registry) takeByType(t ResourceType) []*entry {
	var out []*entry
	for key, e := range r.entries {
		if e.md.Type == t {
			out = append(out, e)
			delete(r.entries, key)
		}
	}
	return out
}

// takeOlderThan removes and returns every entry older than maxAge.
func (r *registry) takeOlderThan(maxAge time.Duration, now time.Time) []*entry {
	var out []*entry
	for key, e := range r.entries {
		if now.Sub(e.md.CreatedAt) > maxAge {
			out = append(out, e)
			delete(r.entries, key)
		}
	}
	return out
}

// takeAll empties the registry and returns everything it held.
func (r *registry) takeAll() []*entry {
	out := make([]*entry, 0, len(r.entries))
	for key, e := range r.entries {
		out = append(out, e)
		delete(r.entries, key)
	}
	return out
}

func (r *registry) size() int {
	return len(r.entries)
}

func (r *registry) countsByType() map[ResourceType]int {
	counts := make(map[ResourceType]int)
	for _, e := range r.entries {
		counts[e.md.Type]++
	}
	return counts
}
