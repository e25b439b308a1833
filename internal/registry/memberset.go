package registry

import (
	"sort"
	"sync"

	"golang.org/x/exp/maps"
)

// memberSet tracks, for each named entity (a topic, typically), the set
// of node ids currently associated with it. It backs both the
// publishers and subscribers tables, which share identical add/remove/
// snapshot semantics.
type memberSet struct {
	mu      sync.RWMutex
	members map[string]map[string]struct{}
}

func newMemberSet() *memberSet {
	return &memberSet{members: make(map[string]map[string]struct{})}
}

// Add records nodeID as a member of name. added is false if it was
// already a member.
func (s *memberSet) Add(name, nodeID string) (added bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.members[name]
	if !ok {
		set = make(map[string]struct{})
		s.members[name] = set
	}
	if _, already := set[nodeID]; already {
		return false
	}
	set[nodeID] = struct{}{}
	return true
}

// Remove drops nodeID from name's member set, removing the set entirely
// once it is empty. removed is false if nodeID was not a member.
func (s *memberSet) Remove(name, nodeID string) (removed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.members[name]
	if !ok {
		return false
	}
	if _, present := set[nodeID]; !present {
		return false
	}
	delete(set, nodeID)
	if len(set) == 0 {
		delete(s.members, name)
	}
	return true
}

// Members returns a sorted snapshot of name's current member node ids.
func (s *memberSet) Members(name string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set, ok := s.members[name]
	if !ok {
		return nil
	}
	out := maps.Keys(set)
	sort.Strings(out)
	return out
}

// Names returns every name that currently has at least one member,
// sorted.
func (s *memberSet) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := maps.Keys(s.members)
	sort.Strings(out)
	return out
}

// Snapshot returns every (name, sorted member list) pair on file,
// sorted by name - the shape getSystemState needs for each of its three
// sections.
func (s *memberSet) Snapshot() []NamedMembers {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := maps.Keys(s.members)
	sort.Strings(names)
	out := make([]NamedMembers, len(names))
	for i, name := range names {
		members := maps.Keys(s.members[name])
		sort.Strings(members)
		out[i] = NamedMembers{Name: name, Members: members}
	}
	return out
}

// NamedMembers is a (name, sorted node id list) pair, the shape shared
// by the publishers, subscribers, and services sections of
// getSystemState.
type NamedMembers struct {
	Name    string
	Members []string
}
