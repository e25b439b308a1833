package registry

import (
	"strings"
	"sync"
)

// ParamSubscription is a standing request by a node to be called back
// whenever the given parameter path (or an ancestor/descendant of it)
// changes.
type ParamSubscription struct {
	NodeID string
	Param  string
	APIURI string
}

type paramSubTable struct {
	mu   sync.RWMutex
	subs []ParamSubscription
}

func newParamSubTable() *paramSubTable {
	return &paramSubTable{}
}

// Subscribe adds or replaces the ParamSubscription for (nodeID, param).
func (t *paramSubTable) Subscribe(nodeID, param, apiURI string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.subs {
		if t.subs[i].NodeID == nodeID && t.subs[i].Param == param {
			t.subs[i].APIURI = apiURI
			return
		}
	}
	t.subs = append(t.subs, ParamSubscription{NodeID: nodeID, Param: param, APIURI: apiURI})
}

// Unsubscribe removes every subscription whose api_uri and param match
// apiURI and param exactly. removed is true if any were removed.
func (t *paramSubTable) Unsubscribe(apiURI, param string) (removed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	kept := t.subs[:0]
	for _, s := range t.subs {
		if s.APIURI == apiURI && s.Param == param {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	t.subs = kept
	return removed
}

// Affected returns every subscription whose param is an ancestor or
// descendant of the written path key - one of the two strings is a
// prefix of the other, compared as full resolved paths.
func (t *paramSubTable) Affected(key string) []ParamSubscription {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []ParamSubscription
	for _, s := range t.subs {
		if isAncestorOrDescendant(key, s.Param) {
			out = append(out, s)
		}
	}
	return out
}

func isAncestorOrDescendant(a, b string) bool {
	if a == b {
		return true
	}
	return strings.HasPrefix(a, b+"/") || strings.HasPrefix(b, a+"/")
}
