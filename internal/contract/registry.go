package contract

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/vk/fnguard/internal/funcid"
)

// Registry holds the declared contracts for a single application instance,
// keyed by function identifier. It is populated at startup (programmatically
// by modules and from manifest files) and read by the instrumentation
// controller afterwards.
type Registry struct {
	mu        sync.RWMutex
	contracts map[funcid.ID]*Contract
}

// NewRegistry creates and initializes a new Registry instance.
func NewRegistry() *Registry {
	return &Registry{
		contracts: make(map[funcid.ID]*Contract),
	}
}

// Register records the contract for id. Registering the same identifier twice
// is a programming error and panics.
func (r *Registry) Register(id funcid.ID, c *Contract) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.contracts[id]; exists {
		panic(fmt.Sprintf("contract for %q already registered", id))
	}
	slog.Debug("Registering function contract.", "id", id.String(), "params", len(c.Params))
	r.contracts[id] = c
}

// Lookup returns the contract declared for id, if any.
func (r *Registry) Lookup(id funcid.ID) (*Contract, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.contracts[id]
	return c, ok
}

// IDs returns every registered identifier, sorted by namespace then name so
// bulk operations process (and report failures) in a deterministic order.
func (r *Registry) IDs() []funcid.ID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]funcid.ID, 0, len(r.contracts))
	for id := range r.contracts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if ids[i].Namespace != ids[j].Namespace {
			return ids[i].Namespace < ids[j].Namespace
		}
		return ids[i].Name < ids[j].Name
	})
	return ids
}

// Len returns the number of registered contracts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.contracts)
}
