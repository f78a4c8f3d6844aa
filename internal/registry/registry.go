package registry

import "sync"

// Registry is the in-process list of panel window IDs, in creation order.
// It is the sole record of which panels this process believes it created;
// reconciliation against the live host window set is the daemon's job.
type Registry struct {
	mu  sync.Mutex
	ids []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Append adds an id at the end of the registry.
func (r *Registry) Append(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, id)
}

// Remove deletes every entry matching id, preserving the order of the rest.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.ids[:0]
	for _, v := range r.ids {
		if v != id {
			kept = append(kept, v)
		}
	}
	r.ids = kept
}

// Snapshot returns a copy of the current contents in insertion order.
func (r *Registry) Snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// Len returns the number of tracked panels.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ids)
}
