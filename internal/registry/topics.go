package registry

import (
	"sort"
	"sync"

	"golang.org/x/exp/maps"
)

// TopicType pairs a topic name with its recorded message type, the
// shape returned by getTopicTypes and getPublishedTopics.
type TopicType struct {
	Name string
	Type string
}

type topicTable struct {
	mu    sync.RWMutex
	types map[string]string
}

func newTopicTable() *topicTable {
	return &topicTable{types: make(map[string]string)}
}

// SetType records topicType for topic if no type is yet recorded.
// mismatch reports whether a different type was already on file; the
// call still succeeds either way, per the warn-and-accept policy. An
// incoming "*" is a wildcard and never reported as a mismatch.
func (t *topicTable) SetType(topic, topicType string) (mismatch bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	existing, ok := t.types[topic]
	if !ok {
		t.types[topic] = topicType
		return false
	}
	return isTypeMismatch(existing, topicType)
}

// CheckType reports whether topicType conflicts with the type already
// recorded for topic, without recording anything. Used by call sites
// that only compare-and-warn, such as subscriber registration.
func (t *topicTable) CheckType(topic, topicType string) (mismatch bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	existing, ok := t.types[topic]
	if !ok {
		return false
	}
	return isTypeMismatch(existing, topicType)
}

func isTypeMismatch(existing, incoming string) bool {
	return incoming != "*" && existing != incoming
}

// Type returns the recorded type for topic, if any.
func (t *topicTable) Type(topic string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	typ, ok := t.types[topic]
	return typ, ok
}

// All returns every (topic, type) pair on file, sorted by topic name.
func (t *topicTable) All() []TopicType {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := maps.Keys(t.types)
	sort.Strings(names)
	out := make([]TopicType, len(names))
	for i, name := range names {
		out[i] = TopicType{Name: name, Type: t.types[name]}
	}
	return out
}
