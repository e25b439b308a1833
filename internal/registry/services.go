package registry

import (
	"sort"
	"sync"

	"golang.org/x/exp/maps"
)

type serviceTable struct {
	mu        sync.RWMutex
	providers map[string]map[string]string // service -> nodeID -> serviceAPI
}

func newServiceTable() *serviceTable {
	return &serviceTable{providers: make(map[string]map[string]string)}
}

// AddProvider records nodeID as a provider of service, reachable at
// serviceAPI.
func (t *serviceTable) AddProvider(service, nodeID, serviceAPI string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	set, ok := t.providers[service]
	if !ok {
		set = make(map[string]string)
		t.providers[service] = set
	}
	set[nodeID] = serviceAPI
}

// RemoveProvider drops nodeID as a provider of service, removing the
// service entirely once it has no providers left.
func (t *serviceTable) RemoveProvider(service, nodeID, serviceAPI string) (removed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	set, ok := t.providers[service]
	if !ok {
		return false
	}
	if api, present := set[nodeID]; !present || api != serviceAPI {
		return false
	}
	delete(set, nodeID)
	if len(set) == 0 {
		delete(t.providers, service)
	}
	return true
}

// AnyProvider returns one provider's service_api for service, chosen
// deterministically (the lexicographically smallest node id) so tests
// are reproducible.
func (t *serviceTable) AnyProvider(service string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	set, ok := t.providers[service]
	if !ok || len(set) == 0 {
		return "", false
	}
	ids := maps.Keys(set)
	sort.Strings(ids)
	return set[ids[0]], true
}

// Snapshot returns every (service, sorted provider node id list) pair
// on file, sorted by service name.
func (t *serviceTable) Snapshot() []NamedMembers {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := maps.Keys(t.providers)
	sort.Strings(names)
	out := make([]NamedMembers, len(names))
	for i, name := range names {
		members := maps.Keys(t.providers[name])
		sort.Strings(members)
		out[i] = NamedMembers{Name: name, Members: members}
	}
	return out
}
