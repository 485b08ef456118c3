package keymap

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/blockpad/internal/input/key"
)

// ErrNilKeymap is returned when registering a nil keymap.
var ErrNilKeymap = errors.New("cannot register nil keymap")

// Registry manages all keymaps and provides binding lookup.
type Registry struct {
	mu sync.RWMutex

	// keymaps holds all registered keymaps by name.
	keymaps map[string]*registered

	// index maps a canonical key spec to the bindings for it, best first.
	index map[string][]entry

	// seq orders registrations so later keymaps win ties.
	seq int
}

type registered struct {
	parsed *ParsedKeymap
	order  int
}

type entry struct {
	binding  ParsedBinding
	keymap   *Keymap
	priority int
	order    int
}

// NewRegistry creates a new keymap registry.
func NewRegistry() *Registry {
	return &Registry{
		keymaps: make(map[string]*registered),
		index:   make(map[string][]entry),
	}
}

// Register adds a keymap to the registry.
// If a keymap with the same name already exists, it is replaced.
func (r *Registry) Register(km *Keymap) error {
	if km == nil {
		return ErrNilKeymap
	}

	parsed, err := km.Parse()
	if err != nil {
		return fmt.Errorf("parsing keymap %q: %w", km.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.keymaps, km.Name)
	r.seq++
	r.keymaps[km.Name] = &registered{parsed: parsed, order: r.seq}
	r.rebuildLocked()
	return nil
}

// Unregister removes a keymap from the registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.keymaps[name]; !ok {
		return
	}
	delete(r.keymaps, name)
	r.rebuildLocked()
}

// rebuildLocked recomputes the lookup index. Caller must hold the write lock.
func (r *Registry) rebuildLocked() {
	r.index = make(map[string][]entry)
	for _, reg := range r.keymaps {
		for _, pb := range reg.parsed.ParsedBindings {
			spec := pb.Event.Spec()
			r.index[spec] = append(r.index[spec], entry{
				binding:  pb,
				keymap:   reg.parsed.Keymap,
				priority: reg.parsed.Priority,
				order:    reg.order,
			})
		}
	}
	for spec := range r.index {
		entries := r.index[spec]
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].priority != entries[j].priority {
				return entries[i].priority > entries[j].priority
			}
			return entries[i].order > entries[j].order
		})
	}
}

// Get returns a keymap by name.
func (r *Registry) Get(name string) *ParsedKeymap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if reg, ok := r.keymaps[name]; ok {
		return reg.parsed
	}
	return nil
}

// Lookup returns the winning binding for ev. An unbinding entry hides
// lower-priority bindings and reports no match.
func (r *Registry) Lookup(ev key.Event) (Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.index[ev.Spec()]
	if len(entries) == 0 {
		return Binding{}, false
	}
	best := entries[0].binding.Binding
	if best.IsUnbind() {
		return Binding{}, false
	}
	return best, true
}

// AllBindings returns every effective binding ordered by key spec.
func (r *Registry) AllBindings() []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specs := make([]string, 0, len(r.index))
	for spec := range r.index {
		specs = append(specs, spec)
	}
	sort.Strings(specs)

	result := make([]Binding, 0, len(specs))
	for _, spec := range specs {
		if b := r.index[spec][0].binding.Binding; !b.IsUnbind() {
			result = append(result, b)
		}
	}
	return result
}

// Stats returns registry statistics.
func (r *Registry) Stats() RegistryStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := RegistryStats{Keymaps: len(r.keymaps), Chords: len(r.index)}
	for _, reg := range r.keymaps {
		stats.Bindings += len(reg.parsed.ParsedBindings)
	}
	return stats
}

// RegistryStats contains registry statistics.
type RegistryStats struct {
	Keymaps  int
	Bindings int
	Chords   int
}
